// Package script replays a scripted innings written in YAML.
//
//	name: powerplay
//	openers: {a: Rahul, b: Rohit}
//	batters: [Virat]
//	deliveries:
//	  - run: 4
//	  - noball
//	  - lbw
package script

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
)

type Openers struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// Delivery is either a bare action name ("wide") or a one-key mapping from
// action to payload ("run: 4").
type Delivery struct {
	Action string
	Value  string
}

func (d *Delivery) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		d.Action = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: delivery must have exactly one action", node.Line)
		}
		d.Action = node.Content[0].Value
		d.Value = node.Content[1].Value
		return nil
	default:
		return fmt.Errorf("line %d: unexpected delivery", node.Line)
	}
}

type Script struct {
	Name       string     `yaml:"name"`
	Openers    Openers    `yaml:"openers"`
	Batters    []string   `yaml:"batters,omitempty"`
	Deliveries []Delivery `yaml:"deliveries"`
}

// Result is the outcome of running a script. Rejected lists deliveries the
// engine refused (for instance anything after the tenth wicket).
type Result struct {
	Name     string          `json:"name"`
	Final    engine.Snapshot `json:"final"`
	Events   []engine.Event  `json:"events"`
	Rejected []string        `json:"rejected,omitempty"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Deliveries) == 0 {
		return nil, errors.New("parse script: no deliveries")
	}
	return &s, nil
}

// Commands validates every delivery up front so a typo fails the whole script.
func (s *Script) Commands() ([]engine.Command, error) {
	cmds := make([]engine.Command, 0, len(s.Deliveries))
	for i, d := range s.Deliveries {
		cmd, err := engine.ParseAction(d.Action, d.Value)
		if err != nil {
			return nil, fmt.Errorf("delivery %d: %w", i+1, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (s *Script) Run() (Result, error) {
	cmds, err := s.Commands()
	if err != nil {
		return Result{}, err
	}

	in := engine.NewInnings(engine.Lineup{A: s.Openers.A, B: s.Openers.B}, engine.NewNameQueue(s.Batters...))
	res := Result{Name: s.Name, Events: []engine.Event{}}
	for i, cmd := range cmds {
		_, events, err := in.Dispatch(cmd)
		if err != nil {
			res.Rejected = append(res.Rejected, strconv.Itoa(i+1)+": "+err.Error())
			continue
		}
		res.Events = append(res.Events, events...)
	}
	res.Final = in.Snapshot()
	return res, nil
}
