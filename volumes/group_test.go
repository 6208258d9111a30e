package volumes

import (
	"testing"

	"github.com/shoenig/test/must"

	"github.com/harborline/stowage/ci"
	"github.com/harborline/stowage/structs"
)

func dvdiApp(id string, instances int, vols ...structs.Volume) *structs.Application {
	return &structs.Application{
		ID:        id,
		Instances: instances,
		Container: &structs.Container{
			Type:    structs.ContainerizerDocker,
			Volumes: vols,
		},
	}
}

func TestGroupConflicts_InternalDuplicate(t *testing.T) {
	ci.Parallel(t)

	p := &DVDIProvider{}
	g := &structs.Group{
		ID: "/",
		Apps: []*structs.Application{
			dvdiApp("/app1", 1,
				dvdiVolume("/data", "vol1", "rexray"),
				dvdiVolume("/backup", "vol1", "rexray"),
			),
		},
	}

	result := p.ValidateGroup(g)
	must.False(t, result.OK())
	must.Len(t, 1, result.Violations)
	must.Eq(t, "/app1", result.Violations[0].Path)
	must.Eq(t, []string{`volume "dvdi::vol1" is referenced 2 times`}, result.Messages())
}

func TestGroupConflicts_InstanceCount(t *testing.T) {
	ci.Parallel(t)

	p := &DVDIProvider{}
	g := &structs.Group{
		ID: "/",
		Apps: []*structs.Application{
			dvdiApp("/app1", 2, dvdiVolume("/data", "vol1", "rexray")),
		},
	}

	result := p.ValidateGroup(g)
	must.False(t, result.OK())
	must.StrContains(t, result.Messages()[0], "must run exactly 1 instance, not 2")

	// apps without dvdi volumes scale freely
	free := &structs.Group{
		ID:   "/",
		Apps: []*structs.Application{dvdiApp("/app2", 5)},
	}
	must.True(t, p.ValidateGroup(free).OK())
}

// TestGroupConflicts_CrossApplication checks that two applications sharing a
// volume key each report the conflict from their own perspective, including
// across nested groups.
func TestGroupConflicts_CrossApplication(t *testing.T) {
	ci.Parallel(t)

	p := &DVDIProvider{}
	g := &structs.Group{
		ID: "/",
		Apps: []*structs.Application{
			dvdiApp("/app1", 1, dvdiVolume("/data", "vol1", "rexray")),
		},
		Groups: []*structs.Group{
			{
				ID: "/prod",
				Apps: []*structs.Application{
					dvdiApp("/prod/app2", 1, dvdiVolume("/data", "vol1", "rexray")),
				},
			},
		},
	}

	result := p.ValidateGroup(g)
	must.False(t, result.OK())
	must.Len(t, 2, result.Violations)

	must.Eq(t, "/app1", result.Violations[0].Path)
	must.StrContains(t, result.Violations[0].Children[0].Message,
		`already referenced by application "/prod/app2"`)

	must.Eq(t, "/prod/app2", result.Violations[1].Path)
	must.StrContains(t, result.Violations[1].Children[0].Message,
		`already referenced by application "/app1"`)
}

func TestGroupConflicts_Success(t *testing.T) {
	ci.Parallel(t)

	p := &DVDIProvider{}

	must.True(t, p.ValidateGroup(nil).OK())

	g := &structs.Group{
		ID: "/",
		Apps: []*structs.Application{
			dvdiApp("/app1", 1, dvdiVolume("/data", "vol1", "rexray")),
			dvdiApp("/app2", 1, dvdiVolume("/data", "vol2", "rexray")),
			{ID: "/app3", Instances: 3},
		},
	}
	must.True(t, p.ValidateGroup(g).OK())
}

// Same name under different providers is not a conflict; the key is
// provider-qualified.
func TestGroupConflicts_ProviderQualifiedKey(t *testing.T) {
	ci.Parallel(t)

	p := &DVDIProvider{}
	g := &structs.Group{
		ID: "/",
		Apps: []*structs.Application{
			dvdiApp("/app1", 1, dvdiVolume("/data", "vol1", "rexray")),
			dvdiApp("/app2", 1, agentVolume("/data", "vol1")),
		},
	}
	must.True(t, p.ValidateGroup(g).OK())
}
