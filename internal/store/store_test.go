package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/lumibyte/lumichat/internal/models"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestOpenSeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := openTestStore(t, path)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("seed snapshot was not persisted: %v", err)
	}

	s.View(func(snap *models.Snapshot) {
		if len(snap.Sessions) != 2 {
			t.Fatalf("seeded sessions = %d, want 2", len(snap.Sessions))
		}
		if snap.Sessions[0].ID != "session-1" || snap.Sessions[1].ID != "session-2" {
			t.Errorf("seeded session ids = %q, %q", snap.Sessions[0].ID, snap.Sessions[1].ID)
		}
		for _, sess := range snap.Sessions {
			conv := snap.Conversations[sess.ID]
			if len(conv) != 1 {
				t.Errorf("conversation %q has %d messages, want 1 welcome message", sess.ID, len(conv))
				continue
			}
			if conv[0].Sender != models.SenderBot {
				t.Errorf("welcome message sender = %q, want %q", conv[0].Sender, models.SenderBot)
			}
		}
	})
}

func TestOpenLeavesCorruptFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	corrupt := []byte("{this is not json")
	if err := os.WriteFile(path, corrupt, 0o644); err != nil {
		t.Fatal(err)
	}

	s := openTestStore(t, path)

	s.View(func(snap *models.Snapshot) {
		if len(snap.Sessions) != 0 {
			t.Errorf("sessions after corrupt load = %d, want 0", len(snap.Sessions))
		}
		if len(snap.Conversations) != 0 {
			t.Errorf("conversations after corrupt load = %d, want 0", len(snap.Conversations))
		}
	})

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, corrupt) {
		t.Error("corrupt snapshot file was rewritten; it must be preserved for diagnosis")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := openTestStore(t, path)

	err := s.Update(func(snap *models.Snapshot) error {
		snap.Conversations["session-1"] = append(snap.Conversations["session-1"], models.Message{
			ID:        "msg-1",
			Sender:    models.SenderUser,
			Text:      "hello",
			Timestamp: snap.Sessions[0].CreatedAt,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	var before []byte
	s.View(func(snap *models.Snapshot) {
		before, err = json.Marshal(snap)
	})
	if err != nil {
		t.Fatal(err)
	}

	reloaded := openTestStore(t, path)
	var after []byte
	reloaded.View(func(snap *models.Snapshot) {
		after, err = json.Marshal(snap)
	})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(before, after) {
		t.Errorf("reloaded snapshot differs:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestUpdateErrorSkipsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := openTestStore(t, path)

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	wantErr := os.ErrInvalid
	if err := s.Update(func(*models.Snapshot) error { return wantErr }); err != wantErr {
		t.Errorf("Update() error = %v, want %v", err, wantErr)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("snapshot file changed after failed Update")
	}
}
