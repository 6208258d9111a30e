package volumes

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/harborline/stowage/structs"
)

// volumeKey identifies a provider-backed volume cluster-wide.
func volumeKey(pv *structs.PersistentVolume) string {
	return pv.Provider + "::" + pv.Name
}

// checkGroupConflicts enforces the cluster-wide rules for provider-backed
// volumes over a whole deployment group:
//
//   - an application must not reference the same volume twice
//   - an application with provider-backed volumes runs exactly one instance,
//     since replicas would contend for the same volume
//   - no two applications anywhere in the group may reference the same
//     volume; both sides report the conflict from their own perspective
//
// Each offending application contributes one group violation carrying its
// individual failures. The scan is a direct nested comparison: group sizes
// are bounded by deployment scale and this runs off the request hot path.
//
// p must be a provider whose SelectVolumes yields persistent volumes.
func checkGroupConflicts(p Provider, g *structs.Group) structs.ValidationResult {
	if g == nil {
		return structs.Success()
	}

	apps := g.TransitiveApps()
	result := structs.Success()

	for _, app := range apps {
		vols := p.SelectVolumes(app.Container)
		if len(vols) == 0 {
			continue
		}

		var children []structs.Violation

		// Duplicate references within the application, keyed in first-seen
		// order so the report is stable.
		seen := set.New[string](len(vols))
		counts := make(map[string]int, len(vols))
		var keys []string
		for _, v := range vols {
			key := volumeKey(v.(*structs.PersistentVolume))
			if seen.Insert(key) {
				keys = append(keys, key)
			}
			counts[key]++
		}
		for _, key := range keys {
			if n := counts[key]; n > 1 {
				children = append(children, structs.RuleViolation("volumes",
					fmt.Sprintf("volume %q is referenced %d times", key, n)))
			}
		}

		if app.Instances != 1 {
			children = append(children, structs.RuleViolation("instances",
				fmt.Sprintf("application has %s volumes and must run exactly 1 instance, not %d",
					p.Name(), app.Instances)))
		}

		for _, key := range keys {
			for _, other := range apps {
				if other == app {
					continue
				}
				for _, ov := range p.SelectVolumes(other.Container) {
					if volumeKey(ov.(*structs.PersistentVolume)) == key {
						children = append(children, structs.RuleViolation("volumes",
							fmt.Sprintf("volume %q is already referenced by application %q",
								key, other.ID)))
						break
					}
				}
			}
		}

		if len(children) > 0 {
			result = result.Merge(structs.Failure(structs.GroupViolation(
				app.ID, "conflicting volume declarations", children)))
		}
	}

	return result
}
