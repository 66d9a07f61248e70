package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edusched/roomalloc/internal/model"
)

func TestWriteAllocation(t *testing.T) {
	allocation := &model.Allocation{
		Assignments: []model.Assignment{
			{
				Unit: model.Unit{DisciplineID: "MAT101", Name: "Cálculo I (Turma A)", Section: "A", Enrollment: 55},
				Room: model.Room{ID: "S201", Capacity: 60, Floor: 2},
			},
			{
				Unit: model.Unit{DisciplineID: "FIS202", Name: "Física Experimental", Enrollment: 28, RequiresLab: true},
				Room: model.Room{ID: "S301", Capacity: 50, Floor: 3},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "allocation.csv")

	err := WriteAllocation(path, allocation)

	assert.Nil(t, err)

	bytes, err := os.ReadFile(path)
	assert.Nil(t, err)

	lines := strings.Split(strings.TrimSpace(string(bytes)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "course,discipline,section,class_size,room,room_type,floor,capacity,occupancy_pct,mismatch", lines[0])
	assert.Equal(t, "MAT101-A,Cálculo I (Turma A),A,55,S201,sala,2,60,91.7,false", lines[1])
	// A lab course forced into a classroom is reported as a mismatch
	assert.Equal(t, "FIS202,Física Experimental,,28,S301,sala,3,50,56,true", lines[2])
}
