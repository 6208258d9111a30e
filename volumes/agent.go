package volumes

import (
	"fmt"

	"github.com/harborline/stowage/helper/validate"
	"github.com/harborline/stowage/structs"
)

// AgentRequiredSettings are the configuration settings the orchestrator must
// declare before it can create agent-local volumes: without a registered
// principal, a role, and the matching credential there is no identity to
// reserve agent storage under.
var AgentRequiredSettings = []string{
	"mesos_authentication_principal",
	"mesos_authentication_secret_file",
	"mesos_role",
}

// AgentLocalProvider handles persistent volumes stored on the agent that
// runs the task. It is the default for persistent volumes that name no
// provider. Placement of the volume is the scheduler's job; this provider
// ends at validation and never changes a build context.
type AgentLocalProvider struct {
	settings Settings
}

func (*AgentLocalProvider) Name() string { return structs.VolumeProviderAgent }

func (*AgentLocalProvider) Accepts(v structs.Volume) bool {
	pv, ok := v.(*structs.PersistentVolume)
	if !ok {
		return false
	}
	return pv.Provider == "" || pv.Provider == structs.VolumeProviderAgent
}

func (p *AgentLocalProvider) SelectVolumes(c *structs.Container) []structs.Volume {
	return selectVolumes(p, c)
}

var agentVolumeRules = validate.And(
	validate.Rule("size", "size is required",
		func(v *structs.PersistentVolume) bool { return v.SizeMiB != nil }),
	validate.Rule("mode", "agent-local volumes must be read-write",
		func(v *structs.PersistentVolume) bool { return v.Mode == structs.VolumeModeRW }),
	validate.Field(func(v *structs.PersistentVolume) string { return v.Provider },
		validate.Or(
			validate.EqualTo("provider", ""),
			validate.EqualTo("provider", structs.VolumeProviderAgent),
		)),
)

func (p *AgentLocalProvider) ValidateVolume(v structs.Volume) structs.ValidationResult {
	pv, ok := v.(*structs.PersistentVolume)
	if !ok {
		return structs.Success()
	}

	result := agentVolumeRules(pv)
	for _, name := range AgentRequiredSettings {
		if p.settings == nil || !p.settings.IsSet(name) {
			result = result.Merge(structs.Failure(structs.RuleViolation("provider",
				fmt.Sprintf("required setting %q is not declared", name))))
		}
	}
	return result
}

func (*AgentLocalProvider) ValidateContainer(*structs.Container) structs.ValidationResult {
	return structs.Success()
}

func (*AgentLocalProvider) ValidateGroup(*structs.Group) structs.ValidationResult {
	return structs.Success()
}

// Materialize is a deliberate no-op: agent-local volume placement happens in
// the scheduler against offered resources, not in the launch-artifact
// builder.
func (*AgentLocalProvider) Materialize(ctx BuildContext, _ structs.Volume) (BuildContext, bool) {
	return ctx, false
}
