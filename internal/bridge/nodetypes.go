// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package bridge

import "sort"

// nodeTypes is the closed set of Godot node classes that operations may
// instantiate. Requests are validated against this list before anything is
// written to disk, so an arbitrary caller string never reaches the engine as
// a type name.
var nodeTypes = map[string]struct{}{
	"Node":               {},
	"Node2D":             {},
	"Node3D":             {},
	"Control":            {},
	"CanvasLayer":        {},
	"Sprite2D":           {},
	"Sprite3D":           {},
	"AnimatedSprite2D":   {},
	"Camera2D":           {},
	"Camera3D":           {},
	"CharacterBody2D":    {},
	"CharacterBody3D":    {},
	"RigidBody2D":        {},
	"RigidBody3D":        {},
	"StaticBody2D":       {},
	"StaticBody3D":       {},
	"Area2D":             {},
	"Area3D":             {},
	"CollisionShape2D":   {},
	"CollisionShape3D":   {},
	"MeshInstance3D":     {},
	"DirectionalLight3D": {},
	"OmniLight3D":        {},
	"AudioStreamPlayer":  {},
	"AnimationPlayer":    {},
	"Timer":              {},
	"Label":              {},
	"Button":             {},
	"Panel":              {},
	"TextureRect":        {},
	"GridMap":            {},
	"TileMapLayer":       {},
}

// ValidNodeType reports whether name is in the supported node class set.
func ValidNodeType(name string) bool {
	_, ok := nodeTypes[name]
	return ok
}

// NodeTypeNames returns the supported node classes in sorted order, for use
// in error messages and tool descriptions.
func NodeTypeNames() []string {
	names := make([]string, 0, len(nodeTypes))
	for name := range nodeTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
