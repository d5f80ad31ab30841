package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
	"github.com/Nogs0/bot-api-Vercel/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER STATUS UPDATES FROM CHAT MESSAGES
// ──────────────────────────────────────────────

func TestDriverStatus_OnlineMessageSetsDriverOnline(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{
		ID:          "driver-1",
		Name:        "João",
		PhoneNumber: "5599999999",
		Online:      false,
	})

	driverService := service.NewDriverService(driverRepo, nil)

	reply, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
		GroupParticipant: "5599999999",
		Message:          " online ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "Motorista João está online 🟢!"; reply != want {
		t.Errorf("expected reply %q, got %q", want, reply)
	}
	if !driverRepo.GetDriver("driver-1").Online {
		t.Error("expected driver to be online")
	}
}

func TestDriverStatus_MessageMatching(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		message    string
		wantOnline bool
	}{
		{name: "exact upper", message: "ONLINE", wantOnline: true},
		{name: "lower", message: "online", wantOnline: true},
		{name: "mixed case with padding", message: "\tOnLiNe \n", wantOnline: true},
		{name: "offline", message: "offline", wantOnline: false},
		{name: "empty", message: "", wantOnline: false},
		{name: "sentence", message: "estou online", wantOnline: false},
		{name: "inner space", message: "on line", wantOnline: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			driverRepo := NewMockDriverRepository()
			driverRepo.AddDriver(&domain.Driver{
				ID:          "driver-1",
				Name:        "Ana",
				PhoneNumber: "5511",
				Online:      !tc.wantOnline,
			})
			driverService := service.NewDriverService(driverRepo, nil)

			reply, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
				GroupParticipant: "5511",
				Message:          tc.message,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := driverRepo.GetDriver("driver-1").Online; got != tc.wantOnline {
				t.Errorf("expected online=%v, got %v", tc.wantOnline, got)
			}

			want := "Motorista Ana está offline 🔴!"
			if tc.wantOnline {
				want = "Motorista Ana está online 🟢!"
			}
			if reply != want {
				t.Errorf("expected reply %q, got %q", want, reply)
			}
		})
	}
}

func TestDriverStatus_UnknownParticipant_ReturnsFallback(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverService := service.NewDriverService(driverRepo, nil)

	reply, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
		GroupParticipant: "0000",
		Message:          "online",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply != service.DriverNotRegisteredMessage {
		t.Errorf("expected %q, got %q", service.DriverNotRegisteredMessage, reply)
	}
	if driverRepo.UpdateOnlineCallCount != 0 {
		t.Errorf("expected no update, got %d", driverRepo.UpdateOnlineCallCount)
	}
}

func TestDriverStatus_EmptyParticipant_ReturnsFallback(t *testing.T) {
	t.Parallel()

	driverService := service.NewDriverService(NewMockDriverRepository(), nil)

	reply, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
		Message: "online",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply != service.DriverNotRegisteredMessage {
		t.Errorf("expected %q, got %q", service.DriverNotRegisteredMessage, reply)
	}
}

func TestDriverStatus_StoreError_Propagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ana", PhoneNumber: "5511"})
	driverRepo.UpdateOnlineError = storeErr

	driverService := service.NewDriverService(driverRepo, nil)

	_, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
		GroupParticipant: "5511",
		Message:          "online",
	})
	if !errors.Is(err, storeErr) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestDriverStatus_FirstMatchingPhoneWins(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "First", PhoneNumber: "5511"})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-2", Name: "Second", PhoneNumber: "5511"})

	driverService := service.NewDriverService(driverRepo, nil)

	reply, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
		GroupParticipant: "5511",
		Message:          "ONLINE",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply != "Motorista First está online 🟢!" {
		t.Errorf("unexpected reply %q", reply)
	}
	if driverRepo.GetDriver("driver-2").Online {
		t.Error("expected second driver to be untouched")
	}
}

func TestDriverStatus_ConcurrentUpdates_NoError(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ana", PhoneNumber: "5511"})
	driverService := service.NewDriverService(driverRepo, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			message := "offline"
			if i%2 == 0 {
				message = "online"
			}
			_, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
				GroupParticipant: "5511",
				Message:          message,
			})
			if err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	if driverRepo.UpdateOnlineCallCount != 50 {
		t.Errorf("expected 50 updates, got %d", driverRepo.UpdateOnlineCallCount)
	}
}

// ──────────────────────────────────────────────
// DRIVER CACHE
// ──────────────────────────────────────────────

func TestDriverCache_LookupIsReadThrough(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ana", PhoneNumber: "5511"})
	driverCache := NewMockDriverCache()
	driverService := service.NewDriverService(driverRepo, driverCache)

	for i := 0; i < 3; i++ {
		driver, err := driverService.FindByPhone(context.Background(), "5511")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if driver.Name != "Ana" {
			t.Errorf("expected Ana, got %s", driver.Name)
		}
	}

	if driverRepo.GetFirstByPhoneCallCount != 1 {
		t.Errorf("expected a single store lookup, got %d", driverRepo.GetFirstByPhoneCallCount)
	}
}

func TestDriverCache_UpdateRefreshesEntry(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ana", PhoneNumber: "5511"})
	driverCache := NewMockDriverCache()
	driverService := service.NewDriverService(driverRepo, driverCache)

	for _, message := range []string{"online", "offline", "online"} {
		if _, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
			GroupParticipant: "5511",
			Message:          message,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	cached, ok := driverCache.Cached("5511")
	if !ok {
		t.Fatal("expected driver to be cached")
	}
	if !cached.Online {
		t.Error("expected cached driver to reflect the last update")
	}
}

func TestDriverCache_StaleEntry_IsInvalidated(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverCache := NewMockDriverCache()
	_ = driverCache.SetDriver(context.Background(), &domain.Driver{ID: "gone", Name: "Ghost", PhoneNumber: "5511"})
	driverService := service.NewDriverService(driverRepo, driverCache)

	reply, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
		GroupParticipant: "5511",
		Message:          "online",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != service.DriverNotRegisteredMessage {
		t.Errorf("expected fallback reply, got %q", reply)
	}
	if _, ok := driverCache.Cached("5511"); ok {
		t.Error("expected stale entry to be removed")
	}
}

func TestDriverCache_Failures_FallBackToStore(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ana", PhoneNumber: "5511"})
	driverCache := NewMockDriverCache()
	driverCache.GetError = errors.New("redis down")
	driverCache.SetError = errors.New("redis down")
	driverService := service.NewDriverService(driverRepo, driverCache)

	reply, err := driverService.UpdateStatusFromMessage(context.Background(), service.UpdateStatusRequest{
		GroupParticipant: "5511",
		Message:          "online",
	})
	if err != nil {
		t.Fatalf("expected cache errors to be swallowed, got %v", err)
	}
	if reply != "Motorista Ana está online 🟢!" {
		t.Errorf("unexpected reply %q", reply)
	}
}
