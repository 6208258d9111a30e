package structs

import (
	"testing"

	"github.com/harborline/stowage/ci"
	"github.com/harborline/stowage/helper/pointer"
	"github.com/shoenig/test/must"
)

func TestPersistentVolume_Copy(t *testing.T) {
	ci.Parallel(t)

	v := &PersistentVolume{
		ContainerPath: "/data",
		Mode:          VolumeModeRW,
		Provider:      VolumeProviderDVDI,
		Name:          "vol1",
		SizeMiB:       pointer.Of(int64(512)),
		Options: map[string]string{
			DVDIDriverOption: "rexray",
		},
	}

	nv := v.Copy().(*PersistentVolume)
	must.Eq(t, v, nv)

	nv.Options[DVDIDriverOption] = "flocker"
	*nv.SizeMiB = 1024

	must.Eq(t, "rexray", v.Options[DVDIDriverOption])
	must.Eq(t, 512, *v.SizeMiB)
}

func TestHostVolume_Copy(t *testing.T) {
	ci.Parallel(t)

	v := &HostVolume{
		ContainerPath: "/etc/config",
		Mode:          VolumeModeRO,
		HostPath:      "/srv/config",
	}

	nv := v.Copy().(*HostVolume)
	must.Eq(t, v, nv)

	nv.HostPath = "/tmp"
	must.Eq(t, "/srv/config", v.HostPath)
}

func TestPersistentVolume_String(t *testing.T) {
	ci.Parallel(t)

	v := &PersistentVolume{
		ContainerPath: "/data",
		Name:          "vol1",
	}
	must.Eq(t, `persistent volume "vol1" at /data`, v.String())

	v.SizeMiB = pointer.Of(int64(512))
	must.Eq(t, `persistent volume "vol1" at /data (512 MiB)`, v.String())
}

func TestParseDVDIConfig(t *testing.T) {
	ci.Parallel(t)

	cases := []struct {
		name     string
		options  map[string]string
		expected *DVDIConfig
	}{
		{
			name:     "nil options",
			options:  nil,
			expected: &DVDIConfig{},
		},
		{
			name: "driver only",
			options: map[string]string{
				DVDIDriverOption: "rexray",
			},
			expected: &DVDIConfig{DriverName: "rexray"},
		},
		{
			name: "driver and size, unknown keys ignored",
			options: map[string]string{
				DVDIDriverOption:      "flocker",
				DVDISizeOption:        "16g",
				"dvdi/flocker-fstype": "xfs",
			},
			expected: &DVDIConfig{DriverName: "flocker", Size: "16g"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseDVDIConfig(tc.options)
			must.NoError(t, err)
			must.Eq(t, tc.expected, c)
		})
	}
}
