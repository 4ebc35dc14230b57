package notifier

import (
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qen-notifier.lock")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	tests := []struct {
		name    string
		content string
		process ps.Process
		wantErr bool
	}{
		{
			name:    "valid lockfile and running tray",
			content: "8731|1234|s3cret",
			process: &mockProcess{pid: 1234, executable: "qen-tray"},
			wantErr: false,
		},
		{
			name:    "malformed lockfile",
			content: "8731|1234",
			wantErr: true,
		},
		{
			name:    "port out of range",
			content: "99999|1234|s3cret",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			content: "abc|1234|s3cret",
			wantErr: true,
		},
		{
			name:    "empty secret",
			content: "8731|1234| ",
			wantErr: true,
		},
		{
			name:    "process not running",
			content: "8731|1234|s3cret",
			process: nil,
			wantErr: true,
		},
		{
			name:    "wrong executable",
			content: "8731|1234|s3cret",
			process: &mockProcess{pid: 1234, executable: "some-other-app"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findProcessFunc = func(pid int) (ps.Process, error) {
				return tt.process, nil
			}

			path := writeLockfile(t, tt.content)
			port, secret, err := findAndValidateTrayProcess(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if port != "8731" || secret != "s3cret" {
					t.Errorf("got port=%s secret=%s", port, secret)
				}
			}
		})
	}
}

func TestFindAndValidateTrayProcess_MissingLockfile(t *testing.T) {
	_, _, err := findAndValidateTrayProcess(filepath.Join(t.TempDir(), "nope.lock"))
	if err == nil {
		t.Error("expected error for missing lockfile")
	}
}
