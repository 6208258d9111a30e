package structs

import (
	"testing"

	"github.com/harborline/stowage/ci"
	"github.com/shoenig/test/must"
)

func TestContainer_Copy(t *testing.T) {
	ci.Parallel(t)

	c := &Container{
		Type: ContainerizerDocker,
		Volumes: []Volume{
			&HostVolume{ContainerPath: "/etc/config", Mode: VolumeModeRO, HostPath: "/srv/config"},
			&PersistentVolume{ContainerPath: "/data", Mode: VolumeModeRW, Provider: VolumeProviderDVDI, Name: "vol1"},
		},
		Docker: &DockerParams{
			Image:      "redis:7",
			Parameters: map[string]string{"label": "web"},
		},
	}

	nc := c.Copy()
	must.Eq(t, c, nc)

	nc.Volumes[0].(*HostVolume).HostPath = "/tmp"
	nc.Docker.Parameters["label"] = "db"

	must.Eq(t, "/srv/config", c.Volumes[0].(*HostVolume).HostPath)
	must.Eq(t, "web", c.Docker.Parameters["label"])

	must.Nil(t, (*Container)(nil).Copy())
}

func TestGroup_TransitiveApps(t *testing.T) {
	ci.Parallel(t)

	g := &Group{
		ID: "/",
		Apps: []*Application{
			{ID: "/app1", Instances: 1},
		},
		Groups: []*Group{
			{
				ID: "/prod",
				Apps: []*Application{
					{ID: "/prod/app2", Instances: 1},
				},
				Groups: []*Group{
					{
						ID: "/prod/db",
						Apps: []*Application{
							{ID: "/prod/db/app3", Instances: 1},
						},
					},
				},
			},
		},
	}

	apps := g.TransitiveApps()
	must.Len(t, 3, apps)
	must.Eq(t, "/app1", apps[0].ID)
	must.Eq(t, "/prod/app2", apps[1].ID)
	must.Eq(t, "/prod/db/app3", apps[2].ID)

	must.Nil(t, (*Group)(nil).TransitiveApps())
	must.SliceEmpty(t, (&Group{ID: "/empty"}).TransitiveApps())
}
