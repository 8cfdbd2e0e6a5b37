package matmap

import (
	"log"

	"github.com/pkg/errors"

	"github.com/golemsfate/asset_pipeline/scene"
)

var (
	ErrNoSelection        = errors.New("nothing selected")
	ErrNoChannelsSelected = errors.New("no channels selected")
)

// renderables returns visible non-intermediate meshes of subtree, depth first
func renderables(insp scene.Inspector, root scene.NodeID) []scene.NodeID {
	result := make([]scene.NodeID, 0)
	var walk func(id scene.NodeID)
	walk = func(id scene.NodeID) {
		info, ok := insp.Node(id)
		if !ok {
			log.Printf("[matmap] Unknown node %q", id)
			return
		}
		if info.Kind == scene.KindMesh && info.Visible && !info.Intermediate {
			result = append(result, id)
		}
		for _, child := range insp.Children(id) {
			walk(child)
		}
	}
	walk(root)
	return result
}

// Build reads texture files of channels for meshes under roots.
// Only first object of every shading network gets an entry.
func Build(insp scene.Inspector, roots []scene.NodeID, channels []string) (*MaterialMap, error) {
	if len(roots) == 0 {
		return nil, ErrNoSelection
	}
	if len(channels) == 0 {
		return nil, ErrNoChannelsSelected
	}

	objects := make([]scene.NodeID, 0)
	for _, root := range roots {
		objects = append(objects, renderables(insp, root)...)
	}
	if len(objects) == 0 {
		return nil, errors.Wrapf(ErrNoSelection, "No visible meshes under %d selected nodes", len(roots))
	}

	m := New()
	used := make(map[scene.NetworkID]string)
	for _, id := range objects {
		info, _ := insp.Node(id)

		networks := insp.ShadingNetworks(id)
		if len(networks) == 0 {
			continue
		}
		net := networks[0]
		if owner, ok := used[net]; ok {
			log.Printf("[matmap] %q shares shading network %q with %q, skipped", info.Name, net, owner)
			continue
		}
		used[net] = info.Name

		e := m.Add(info.Name)
		for _, channel := range channels {
			if file, ok := insp.TextureFile(net, channel); ok {
				f := file
				e.Set(channel, &f)
			} else {
				e.Set(channel, nil)
			}
		}
	}
	log.Printf("[matmap] Collected %d materials", len(m.Entries))
	return m, nil
}

// Remap renames channels through table. Channels without mapping are dropped
// and returned.
func Remap(m *MaterialMap, table map[string]string) (*MaterialMap, []string) {
	result := New()
	dropped := make([]string, 0)
	seen := make(map[string]bool)

	for _, e := range m.Entries {
		re := result.Add(e.Object)
		for _, c := range e.Channels {
			to, ok := table[c.Name]
			if !ok || to == "" {
				if !seen[c.Name] {
					seen[c.Name] = true
					dropped = append(dropped, c.Name)
					log.Printf("[matmap] Channel %q has no remap entry, its textures are dropped", c.Name)
				}
				continue
			}
			re.Set(to, c.Path)
		}
	}
	return result, dropped
}
