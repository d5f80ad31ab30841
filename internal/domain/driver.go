package domain

// Driver represents a driver that can be dispatched through the chat bot.
type Driver struct {
	ID          string
	Name        string
	PhoneNumber string
	Online      bool
}

// StatusLabel returns the chat label for the driver's availability.
func (d *Driver) StatusLabel() string {
	if d.Online {
		return "online 🟢"
	}
	return "offline 🔴"
}
