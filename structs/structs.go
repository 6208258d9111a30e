// Package structs holds the application, group, and volume model shared by
// the volume-provider framework and its callers.
package structs

import (
	"github.com/mitchellh/copystructure"
)

// ContainerizerType selects the execution substrate a container runs on.
type ContainerizerType string

const (
	// ContainerizerDocker runs the task through the Docker daemon.
	ContainerizerDocker ContainerizerType = "docker"

	// ContainerizerMesos runs the task with the platform's native
	// containerizer.
	ContainerizerMesos ContainerizerType = "mesos"
)

// DockerParams are the Docker-specific settings of a Container.
type DockerParams struct {
	Image      string
	Privileged bool
	Parameters map[string]string
}

func (d *DockerParams) Copy() *DockerParams {
	if d == nil {
		return nil
	}

	nd := new(DockerParams)
	*nd = *d

	if i, err := copystructure.Copy(d.Parameters); err != nil {
		panic(err.Error())
	} else {
		nd.Parameters = i.(map[string]string)
	}

	return nd
}

// Container is the container section of an application spec. Volume order is
// the order of declaration and is preserved by every consumer.
type Container struct {
	Type    ContainerizerType
	Volumes []Volume
	Docker  *DockerParams
}

func (c *Container) Copy() *Container {
	if c == nil {
		return nil
	}

	nc := new(Container)
	*nc = *c

	if len(c.Volumes) > 0 {
		nc.Volumes = make([]Volume, len(c.Volumes))
		for i, v := range c.Volumes {
			nc.Volumes[i] = v.Copy()
		}
	}
	nc.Docker = c.Docker.Copy()

	return nc
}

// Application is one deployable unit of a Group. Only the fields the volume
// framework reads are modeled here; the orchestrator owns the rest.
type Application struct {
	ID        string
	Instances int
	Container *Container
}

func (a *Application) Copy() *Application {
	if a == nil {
		return nil
	}

	na := new(Application)
	*na = *a
	na.Container = a.Container.Copy()
	return na
}

// Group is a hierarchical collection of applications. Cross-application
// uniqueness rules run over the transitive application set.
type Group struct {
	ID     string
	Apps   []*Application
	Groups []*Group
}

// TransitiveApps returns the applications of g and all nested groups,
// parents first.
func (g *Group) TransitiveApps() []*Application {
	if g == nil {
		return nil
	}

	apps := make([]*Application, 0, len(g.Apps))
	apps = append(apps, g.Apps...)
	for _, sub := range g.Groups {
		apps = append(apps, sub.TransitiveApps()...)
	}
	return apps
}
