package fsm

import "fmt"

// AddState registers a node under id and name, replacing any node with the same id
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{ID: id, Name: name, ParentID: parentID}
	m.nodes[id] = node
	m.names[name] = id
	return node
}

// CompilePaths fills Node.Path with the chain Root..node for every node
// Must run after the last AddState and before Init
func (m *Machine[T]) CompilePaths() error {
	done := make(map[StateID]bool, len(m.nodes))
	visiting := make(map[StateID]bool)

	var walk func(id StateID) ([]StateID, error)
	walk = func(id StateID) ([]StateID, error) {
		node, ok := m.nodes[id]
		if !ok {
			return nil, fmt.Errorf("missing state %d", id)
		}
		if done[id] {
			return node.Path, nil
		}
		if visiting[id] {
			return nil, fmt.Errorf("state '%s' has a parent cycle", node.Name)
		}
		visiting[id] = true

		var path []StateID
		if node.ParentID != StateNone {
			parent, err := walk(node.ParentID)
			if err != nil {
				return nil, fmt.Errorf("state '%s': %w", node.Name, err)
			}
			path = make([]StateID, len(parent), len(parent)+1)
			copy(path, parent)
		}
		node.Path = append(path, id)

		delete(visiting, id)
		done[id] = true
		return node.Path, nil
	}

	for id := range m.nodes {
		if _, err := walk(id); err != nil {
			return err
		}
	}
	return nil
}
