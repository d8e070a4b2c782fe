//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shelter-api"
	ConsumerName = "adoption-portal"

	StateCatalogSeeded = "adoptable pets are listed"
	StatePetExists     = "pet with id 101 exists"
	StatePetMissing    = "no pet with id 404"
)

const (
	ExistingPetID int64 = 101
	MissingPetID  int64 = 404
	ShelterID     int64 = 7
	ShelterOwner  int64 = 70
)

const (
	examplePetName     = "Biscuit"
	examplePetSpecies  = "dog"
	exampleShelterName = "Pact Paws Shelter"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePet describes the pet seeded by the provider states.
type ExamplePet struct {
	ID        int64
	ShelterID int64
	Name      string
	Species   string
	Status    string
}

func ExamplePetData() ExamplePet {
	return ExamplePet{
		ID:        ExistingPetID,
		ShelterID: ShelterID,
		Name:      examplePetName,
		Species:   examplePetSpecies,
		Status:    "adoptable",
	}
}

func ExampleShelterName() string {
	return exampleShelterName
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
