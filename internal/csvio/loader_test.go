package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeCsv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDisciplines(t *testing.T) {
	t.Run("Full row", func(t *testing.T) {
		path := writeCsv(t, "courses.csv",
			"course,name,day,time,class_size,req,pref_floor,course_floor_pref,split_authorized,min_split_teachers,assigned_professors\n"+
				"MAT101,Cálculo I,Segunda,19h00-20h50,60,0,2,1.5,true,2,\"Ana Souza, Bruno Lima\"\n")

		disciplines, err := LoadDisciplines(path)

		assert.Nil(t, err)
		assert.Len(t, disciplines, 1)

		discipline := disciplines[0]
		assert.Equal(t, "MAT101", discipline.ID)
		assert.Equal(t, "Cálculo I", discipline.Name)
		assert.Equal(t, []int{2, 3}, discipline.Slots)
		assert.Equal(t, 60, discipline.Enrollment)
		assert.False(t, discipline.RequiresLab)
		assert.Equal(t, []int{2}, discipline.PreferredFloors)
		assert.Equal(t, 1.5, discipline.FloorWeight)
		assert.True(t, discipline.SplitAuthorized)
		assert.Equal(t, 2, discipline.MinSplitTeachers)
		assert.Equal(t, []string{"Ana Souza", "Bruno Lima"}, discipline.Teachers)
	})

	t.Run("Defaults fill sparse rows", func(t *testing.T) {
		path := writeCsv(t, "courses.csv",
			"course,name,day,time,class_size,req,pref_floor,course_floor_pref,split_authorized,min_split_teachers,assigned_professors\n"+
				"FIS202,Física Experimental,Quarta,17h20-18h10,28,1,0,0,false,0,\n")

		disciplines, err := LoadDisciplines(path)

		assert.Nil(t, err)

		discipline := disciplines[0]
		assert.True(t, discipline.RequiresLab)
		// pref_floor 0 means no preference at all
		assert.Nil(t, discipline.PreferredFloors)
		assert.Equal(t, 1.0, discipline.FloorWeight)
		assert.Equal(t, 2, discipline.MinSplitTeachers)
		assert.Empty(t, discipline.Teachers)
	})

	t.Run("Bad schedule fails with the course named", func(t *testing.T) {
		path := writeCsv(t, "courses.csv",
			"course,name,day,time,class_size,req,pref_floor,course_floor_pref,split_authorized,min_split_teachers,assigned_professors\n"+
				"MAT101,Cálculo I,Domingo,19h00-20h50,60,0,0,0,false,0,\n")

		_, err := LoadDisciplines(path)

		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "MAT101")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadDisciplines(filepath.Join(t.TempDir(), "nope.csv"))

		assert.NotNil(t, err)
	})
}

func TestLoadRooms(t *testing.T) {
	path := writeCsv(t, "rooms.csv",
		"name,type,capacity,floor,is_blocked\n"+
			"L101,LAB,40,1,false\n"+
			"S201,sala,80,2,true\n")

	rooms, err := LoadRooms(path)

	assert.Nil(t, err)
	assert.Len(t, rooms, 2)

	assert.Equal(t, "L101", rooms[0].ID)
	assert.True(t, rooms[0].Lab)
	assert.Equal(t, 40, rooms[0].Capacity)
	assert.Equal(t, 1, rooms[0].Floor)
	assert.False(t, rooms[0].Blocked)

	assert.False(t, rooms[1].Lab)
	assert.True(t, rooms[1].Blocked)
}
