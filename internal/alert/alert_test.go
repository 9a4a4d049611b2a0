package alert

import (
	"testing"

	"github.com/matryer/is"
	"github.com/td0m/taskmaster/pkg/persist"
	"github.com/td0m/taskmaster/pkg/remind"
)

func TestStoredPermission(t *testing.T) {
	is := is.New(t)
	dir, err := persist.OpenDir(t.TempDir())
	is.NoErr(err)
	p := NewStoredPermission(dir)

	is.Equal(p.State(), remind.PermissionDefault)

	is.NoErr(p.Record(remind.PermissionDenied))
	is.Equal(p.State(), remind.PermissionDenied)

	// survives a restart
	is.NoErr(p.Record(remind.PermissionGranted))
	is.Equal(NewStoredPermission(dir).State(), remind.PermissionGranted)

	is.True(p.Record(remind.PermissionDefault) != nil)

	t.Run("garbage reads as not asked", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(dir.Set(PermissionKey, []byte("maybe")))
		is.Equal(p.State(), remind.PermissionDefault)
	})
}
