package scene

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/golemsfate/asset_pipeline/utils"
)

// SnapshotNode is node of scene tree dumped by authoring tool
type SnapshotNode struct {
	ID           NodeID          `yaml:"id"`
	Name         string          `yaml:"name"`
	Type         Kind            `yaml:"type"`
	Visible      *bool           `yaml:"visible,omitempty"`
	Intermediate bool            `yaml:"intermediate,omitempty"`
	Shading      []NetworkID     `yaml:"shading,omitempty"`
	Children     []*SnapshotNode `yaml:"children,omitempty"`
}

type ShadingNetwork struct {
	ID       NetworkID         `yaml:"id"`
	Channels map[string]string `yaml:"channels"`
}

// Snapshot is yaml dump of authoring scene. Implements Inspector.
type Snapshot struct {
	Application string            `yaml:"application"`
	Axes        Axes              `yaml:"axes"`
	FPS         float32           `yaml:"fps"`
	// centimeters per scene unit
	UnitScale float32           `yaml:"unit_scale"`
	Selected  []NodeID          `yaml:"selection"`
	Nodes     []*SnapshotNode   `yaml:"nodes"`
	Networks  []*ShadingNetwork `yaml:"shading_networks"`
	Armatures []*Armature       `yaml:"armatures"`

	nodes    map[NodeID]*SnapshotNode
	parents  map[NodeID]NodeID
	networks map[NetworkID]*ShadingNetwork
}

func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read snapshot")
	}
	s, err := ParseSnapshot(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Snapshot %q", path)
	}
	return s, nil
}

func ParseSnapshot(data []byte) (*Snapshot, error) {
	data, err := utils.DecodeHostText(data)
	if err != nil {
		return nil, err
	}
	s := &Snapshot{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "Cannot parse snapshot")
	}
	if err := s.index(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) index() error {
	if s.Axes.Forward == "" && s.Axes.Up == "" {
		s.Axes = DefaultAxes
	}
	if _, err := s.Axes.Basis(); err != nil {
		return err
	}
	if s.FPS <= 0 {
		s.FPS = 24
	}
	if s.UnitScale <= 0 {
		s.UnitScale = 1
	}

	s.networks = make(map[NetworkID]*ShadingNetwork)
	for _, net := range s.Networks {
		if _, ok := s.networks[net.ID]; ok {
			return errors.Errorf("Duplicate shading network %q", net.ID)
		}
		s.networks[net.ID] = net
	}

	s.nodes = make(map[NodeID]*SnapshotNode)
	s.parents = make(map[NodeID]NodeID)
	var walk func(parent NodeID, nodes []*SnapshotNode) error
	walk = func(parent NodeID, nodes []*SnapshotNode) error {
		for _, n := range nodes {
			if n.ID == "" {
				n.ID = NodeID(n.Name)
			}
			if n.Name == "" {
				n.Name = string(n.ID)
			}
			if n.Type == "" {
				n.Type = KindGroup
			}
			if _, ok := s.nodes[n.ID]; ok {
				return errors.Errorf("Duplicate node %q", n.ID)
			}
			for _, net := range n.Shading {
				if _, ok := s.networks[net]; !ok {
					return errors.Errorf("Node %q uses unknown shading network %q", n.ID, net)
				}
			}
			s.nodes[n.ID] = n
			if parent != "" {
				s.parents[n.ID] = parent
			}
			if err := walk(n.ID, n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk("", s.Nodes); err != nil {
		return err
	}

	for _, id := range s.Selected {
		if _, ok := s.nodes[id]; !ok {
			return errors.Errorf("Selected node %q not found", id)
		}
	}
	for _, a := range s.Armatures {
		if a.Node == "" {
			a.Node = NodeID(a.Name)
		}
		if n, ok := s.nodes[a.Node]; !ok || n.Type != KindArmature {
			return errors.Errorf("Armature %q is not bound to armature node", a.Name)
		}
		for _, b := range a.Bones {
			if b.Parent != "" && a.Bone(b.Parent) == nil {
				return errors.Errorf("Bone %q of %q has unknown parent %q", b.Name, a.Name, b.Parent)
			}
		}
	}
	return nil
}

func (s *Snapshot) Selection() []NodeID {
	return s.Selected
}

func (s *Snapshot) Children(id NodeID) []NodeID {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	result := make([]NodeID, len(n.Children))
	for i, c := range n.Children {
		result[i] = c.ID
	}
	return result
}

func (s *Snapshot) Node(id NodeID) (NodeInfo, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return NodeInfo{}, false
	}
	return NodeInfo{
		Name:         n.Name,
		Kind:         n.Type,
		Visible:      n.Visible == nil || *n.Visible,
		Intermediate: n.Intermediate,
	}, true
}

func (s *Snapshot) ShadingNetworks(id NodeID) []NetworkID {
	if n, ok := s.nodes[id]; ok {
		return n.Shading
	}
	return nil
}

func (s *Snapshot) TextureFile(net NetworkID, channel string) (string, bool) {
	if n, ok := s.networks[net]; ok {
		if file, ok := n.Channels[channel]; ok && file != "" {
			return file, true
		}
	}
	return "", false
}

// SelectedArmatures returns armatures which node is selected or lies under selected node
func (s *Snapshot) SelectedArmatures() []*Armature {
	selected := make(map[NodeID]struct{}, len(s.Selected))
	for _, id := range s.Selected {
		selected[id] = struct{}{}
	}
	result := make([]*Armature, 0)
	for _, a := range s.Armatures {
		for id, ok := a.Node, true; ok; id, ok = s.parents[id] {
			if _, sel := selected[id]; sel {
				result = append(result, a)
				break
			}
		}
	}
	return result
}
