package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const batchInput = `{
    "customers": {"C1": {"name": "Alice", "email": "alice@x.com"}},
    "hotels": {"H1": {"name": "Grand", "total_rooms": 10, "reserved_rooms": [1, 2]}},
    "reservations": {"R1": {"customer_id": "C1", "hotel_id": "H1", "rooms": [3], "check_in": "2025-01-01", "check_out": "2025-01-02"}}
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("KAFKA_BROKERS", "")

	var stdout, stderr bytes.Buffer
	cliApp := newApp()
	cliApp.Writer = &stdout
	cliApp.ErrWriter = &stderr

	err := cliApp.Run(append([]string{ServiceName}, args...))
	return stdout.String(), err
}

func TestRun_ReplaysBatchAndWritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.json")
	ledger := filepath.Join(dir, "hotel.json")
	output := filepath.Join(dir, "output.json")
	if err := os.WriteFile(input, []byte(batchInput), 0o644); err != nil {
		t.Fatal(err)
	}
	// a stale ledger from an earlier run must not leak into this one
	if err := os.WriteFile(ledger, []byte(`{"hotels": {"OLD": {"name": "x", "total_rooms": 1, "reserved_rooms": []}}, "customers": {}, "reservations": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := runCLI(t, "--store", ledger, "--output", output, input)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"--- Customers ---",
		"[OK] Created customer C1",
		"[OK] Reserved room 2 in hotel H1",
		"[OK] Cancelled reservation R1",
		"[OK] Deleted hotel H1",
		"[DONE] Final data saved to " + output,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	working, err := os.ReadFile(ledger)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, working) {
		t.Errorf("output differs from working ledger:\n%s\nvs\n%s", got, working)
	}
	if strings.Contains(string(got), "OLD") {
		t.Errorf("stale ledger content survived:\n%s", got)
	}
}

func TestRun_EmptyBatchWritesEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.json")
	output := filepath.Join(dir, "output.json")
	if err := os.WriteFile(input, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--store", filepath.Join(dir, "hotel.json"), "--output", output, input); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `"reservations": {}`) {
		t.Errorf("expected empty snapshot, got:\n%s", got)
	}
}

func TestRun_MissingInputFails(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, "--store", filepath.Join(dir, "hotel.json"), filepath.Join(dir, "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("expected file not found error, got %v", err)
	}

	if _, err := runCLI(t); err == nil {
		t.Error("expected an error without an input file")
	}
}

func TestRun_RejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.json")
	if err := os.WriteFile(input, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "--store", filepath.Join(dir, "hotel.json"), "--mode", "eventual", input)
	if err == nil || !strings.Contains(err.Error(), "ReservationMode") {
		t.Errorf("expected mode validation error, got %v", err)
	}
}

func TestRun_ModeIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.json")
	if err := os.WriteFile(input, []byte(batchInput), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := runCLI(t, "--store", filepath.Join(dir, "hotel.json"), "--output", filepath.Join(dir, "out.json"), "--mode", " Atomic ", input)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout, "[OK] Created reservation R1") {
		t.Errorf("stdout missing reservation create:\n%s", stdout)
	}
}
