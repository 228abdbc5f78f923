package memory_test

import (
	"testing"

	"github.com/aretw0/meander/pkg/adapters/memory"
	"github.com/aretw0/meander/pkg/ports/tests"
)

func TestHVARepo_Contract(t *testing.T) {
	tests.RunHVARepositoryContract(t, memory.NewHVARepo())
}

func TestInterventionRepo_Contract(t *testing.T) {
	tests.RunInterventionRepositoryContract(t, memory.NewInterventionRepo())
}
