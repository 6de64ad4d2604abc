package world

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ExitMap is a direction → room ID mapping that remembers YAML declaration
// order, so exit lists render the way the content author wrote them.
type ExitMap struct {
	Order   []string
	Targets map[string]string
}

// UnmarshalYAML decodes a YAML mapping node while recording key order.
func (e *ExitMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("exits must be a mapping, got %v", node.Kind)
	}
	e.Targets = make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		dir := node.Content[i].Value
		e.Order = append(e.Order, dir)
		e.Targets[dir] = node.Content[i+1].Value
	}
	return nil
}

// RoomDefinition is a room entry in the rooms YAML file.
type RoomDefinition struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Exits       ExitMap `yaml:"exits"`
}

// RoomsConfig is the structure of the rooms YAML file.
type RoomsConfig struct {
	Rooms map[string]RoomDefinition `yaml:"rooms"`
}

// NPCDefinition is an NPC entry in the NPCs YAML file.
type NPCDefinition struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Room        string            `yaml:"room"`
	Responses   map[string]string `yaml:"responses"`
}

// NPCsConfig is the structure of the NPCs YAML file.
type NPCsConfig struct {
	NPCs map[string]NPCDefinition `yaml:"npcs"`
}

// ItemDefinition is an item entry in the items YAML file.
type ItemDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Room        string `yaml:"room"`
}

// ItemsConfig is the structure of the items YAML file.
type ItemsConfig struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

// Content is the fully loaded and validated world content, ready to seed
// the store. Slices are sorted by ID so enumeration order is stable.
type Content struct {
	Rooms []*Room
	NPCs  []*NPC
	Items []*Item
}

// LoadRoomsFromYAML loads room definitions from a YAML file.
func LoadRoomsFromYAML(filename string) (*RoomsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms file: %w", err)
	}
	var config RoomsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse rooms YAML: %w", err)
	}
	return &config, nil
}

// LoadNPCsFromYAML loads NPC definitions from a YAML file.
func LoadNPCsFromYAML(filename string) (*NPCsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read NPCs file: %w", err)
	}
	var config NPCsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse NPCs YAML: %w", err)
	}
	return &config, nil
}

// LoadItemsFromYAML loads item definitions from a YAML file.
func LoadItemsFromYAML(filename string) (*ItemsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}
	var config ItemsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse items YAML: %w", err)
	}
	return &config, nil
}

// LoadContent loads and validates the three content files together.
func LoadContent(roomsFile, npcsFile, itemsFile string) (*Content, error) {
	roomsCfg, err := LoadRoomsFromYAML(roomsFile)
	if err != nil {
		return nil, err
	}
	npcsCfg, err := LoadNPCsFromYAML(npcsFile)
	if err != nil {
		return nil, err
	}
	itemsCfg, err := LoadItemsFromYAML(itemsFile)
	if err != nil {
		return nil, err
	}
	return BuildContent(roomsCfg, npcsCfg, itemsCfg)
}

// BuildContent converts raw definitions into world entities, validating the
// cross-references between them.
func BuildContent(roomsCfg *RoomsConfig, npcsCfg *NPCsConfig, itemsCfg *ItemsConfig) (*Content, error) {
	content := &Content{}

	roomIDs := make([]string, 0, len(roomsCfg.Rooms))
	for id := range roomsCfg.Rooms {
		roomIDs = append(roomIDs, id)
	}
	sort.Strings(roomIDs)

	for _, id := range roomIDs {
		def := roomsCfg.Rooms[id]
		if def.Name == "" {
			return nil, fmt.Errorf("room %q has no name", id)
		}
		content.Rooms = append(content.Rooms, &Room{
			ID:          id,
			Name:        def.Name,
			Description: def.Description,
			Exits:       def.Exits.Targets,
			ExitOrder:   def.Exits.Order,
		})
	}

	for _, room := range content.Rooms {
		for dir, dest := range room.Exits {
			if _, ok := roomsCfg.Rooms[dest]; !ok {
				return nil, fmt.Errorf("room %q exit %q points to unknown room %q", room.ID, dir, dest)
			}
		}
	}

	npcIDs := make([]string, 0, len(npcsCfg.NPCs))
	for id := range npcsCfg.NPCs {
		npcIDs = append(npcIDs, id)
	}
	sort.Strings(npcIDs)

	for _, id := range npcIDs {
		def := npcsCfg.NPCs[id]
		if _, ok := roomsCfg.Rooms[def.Room]; !ok {
			return nil, fmt.Errorf("NPC %q placed in unknown room %q", id, def.Room)
		}
		if _, ok := def.Responses["default"]; !ok {
			return nil, fmt.Errorf("NPC %q has no default response", id)
		}
		content.NPCs = append(content.NPCs, &NPC{
			ID:          id,
			Name:        def.Name,
			Description: def.Description,
			RoomID:      def.Room,
			Responses:   def.Responses,
		})
	}

	itemIDs := make([]string, 0, len(itemsCfg.Items))
	for id := range itemsCfg.Items {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	for _, id := range itemIDs {
		def := itemsCfg.Items[id]
		if _, ok := roomsCfg.Rooms[def.Room]; !ok {
			return nil, fmt.Errorf("item %q placed in unknown room %q", id, def.Room)
		}
		content.Items = append(content.Items, &Item{
			ID:          id,
			Name:        def.Name,
			Description: def.Description,
			Location:    RoomLocation(def.Room),
		})
	}

	return content, nil
}
