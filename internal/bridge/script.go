// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package bridge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matula/godot-mcp-server/internal/testable"
)

// ScriptName is the file name of the generated bridge script inside the
// system temp directory.
const ScriptName = "godot_mcp_bridge.gd"

// ScriptPath returns the fixed, deterministic location of the bridge script.
func ScriptPath() string {
	return filepath.Join(os.TempDir(), ScriptName)
}

// EnsureScript materializes the bridge script at ScriptPath on first use.
// Subsequent calls see the existing file and return without writing, so the
// script is created at most once per process lifetime (and survives across
// processes until the temp directory is cleaned).
func EnsureScript(fs testable.FileSystem) (string, error) {
	path := ScriptPath()
	if _, err := fs.Stat(path); err == nil {
		return path, nil
	}
	if err := fs.WriteFile(path, []byte(bridgeScript), 0o600); err != nil {
		return "", fmt.Errorf("write bridge script: %w", err)
	}
	return path, nil
}

// bridgeScript is the GDScript program Godot executes for structured
// operations. It reads a JSON request file whose path is passed on the
// command line, dispatches on the request's "operation" field, and prints a
// single JSON line to stdout: {"success": true, ...} or
// {"success": false, "error": ...}.
//
// The script text is static. Caller-supplied values only ever travel through
// the JSON request file, never through script generation.
const bridgeScript = `extends SceneTree

# Bridge between godot-mcp and a Godot project. Invoked headless:
#   godot --headless --script godot_mcp_bridge.gd <request.json>
# Prints exactly one JSON result line to stdout.

func _init():
	var request_path := _find_request_path()
	if request_path == "":
		_fail("no request file argument")
		return
	var file := FileAccess.open(request_path, FileAccess.READ)
	if file == null:
		_fail("cannot open request file: " + request_path)
		return
	var parsed = JSON.parse_string(file.get_as_text())
	file.close()
	if typeof(parsed) != TYPE_DICTIONARY:
		_fail("request file is not a JSON object")
		return
	var request: Dictionary = parsed
	var operation := str(request.get("operation", ""))

	match operation:
		"create_scene":
			_create_scene(request)
		"add_node":
			_add_node(request)
		"load_sprite":
			_load_sprite(request)
		"save_scene":
			_save_scene(request)
		"export_mesh_library":
			_export_mesh_library(request)
		"get_uid":
			_get_uid(request)
		"resave_resources":
			_resave_resources(request)
		_:
			_fail("unknown operation: " + operation)

func _find_request_path() -> String:
	var args := OS.get_cmdline_args()
	for arg in args:
		if arg.ends_with(".json"):
			return arg
	return ""

func _ok(payload: Dictionary) -> void:
	payload["success"] = true
	print(JSON.stringify(payload))
	quit(0)

func _fail(message: String) -> void:
	print(JSON.stringify({"success": false, "error": message}))
	quit(1)

func _create_scene(request: Dictionary) -> void:
	var scene_path := str(request.get("scenePath", ""))
	var root_type := str(request.get("rootNodeType", "Node2D"))
	if scene_path == "":
		_fail("scenePath is required")
		return
	if not ClassDB.class_exists(root_type):
		_fail("unknown node type: " + root_type)
		return
	var root: Node = ClassDB.instantiate(root_type)
	root.name = scene_path.get_file().get_basename()
	var packed := PackedScene.new()
	var pack_err := packed.pack(root)
	if pack_err != OK:
		_fail("pack failed: " + error_string(pack_err))
		return
	var save_err := ResourceSaver.save(packed, scene_path)
	if save_err != OK:
		_fail("save failed: " + error_string(save_err))
		return
	_ok({"scenePath": scene_path, "rootNodeType": root_type})

func _load_packed(scene_path: String) -> PackedScene:
	if not ResourceLoader.exists(scene_path):
		return null
	return load(scene_path) as PackedScene

func _add_node(request: Dictionary) -> void:
	var scene_path := str(request.get("scenePath", ""))
	var node_type := str(request.get("nodeType", ""))
	var node_name := str(request.get("nodeName", ""))
	var parent_path := str(request.get("parentNodePath", ""))
	var packed := _load_packed(scene_path)
	if packed == null:
		_fail("scene not found: " + scene_path)
		return
	if not ClassDB.class_exists(node_type):
		_fail("unknown node type: " + node_type)
		return
	var root := packed.instantiate()
	var parent: Node = root
	if parent_path != "" and parent_path != ".":
		parent = root.get_node_or_null(parent_path)
		if parent == null:
			_fail("parent node not found: " + parent_path)
			return
	var child: Node = ClassDB.instantiate(node_type)
	child.name = node_name if node_name != "" else node_type
	var properties = request.get("properties", {})
	if typeof(properties) == TYPE_DICTIONARY:
		for key in properties:
			child.set(key, properties[key])
	parent.add_child(child)
	child.owner = root
	if _repack(packed, root, scene_path):
		_ok({"scenePath": scene_path, "nodeName": child.name})

func _load_sprite(request: Dictionary) -> void:
	var scene_path := str(request.get("scenePath", ""))
	var node_path := str(request.get("nodePath", ""))
	var texture_path := str(request.get("texturePath", ""))
	var packed := _load_packed(scene_path)
	if packed == null:
		_fail("scene not found: " + scene_path)
		return
	var root := packed.instantiate()
	var node := root.get_node_or_null(node_path)
	if node == null:
		_fail("node not found: " + node_path)
		return
	if not ResourceLoader.exists(texture_path):
		_fail("texture not found: " + texture_path)
		return
	node.texture = load(texture_path)
	if _repack(packed, root, scene_path):
		_ok({"scenePath": scene_path, "nodePath": node_path, "texturePath": texture_path})

func _save_scene(request: Dictionary) -> void:
	var scene_path := str(request.get("scenePath", ""))
	var new_path := str(request.get("newPath", scene_path))
	var packed := _load_packed(scene_path)
	if packed == null:
		_fail("scene not found: " + scene_path)
		return
	var save_err := ResourceSaver.save(packed, new_path)
	if save_err != OK:
		_fail("save failed: " + error_string(save_err))
		return
	_ok({"scenePath": new_path})

func _export_mesh_library(request: Dictionary) -> void:
	var scene_path := str(request.get("scenePath", ""))
	var output_path := str(request.get("outputPath", ""))
	var packed := _load_packed(scene_path)
	if packed == null:
		_fail("scene not found: " + scene_path)
		return
	var root := packed.instantiate()
	var library := MeshLibrary.new()
	var index := 0
	for child in root.get_children():
		if child is MeshInstance3D:
			library.create_item(index)
			library.set_item_name(index, child.name)
			library.set_item_mesh(index, child.mesh)
			index += 1
	if index == 0:
		_fail("no MeshInstance3D children in scene")
		return
	var save_err := ResourceSaver.save(library, output_path)
	if save_err != OK:
		_fail("save failed: " + error_string(save_err))
		return
	_ok({"outputPath": output_path, "itemCount": index})

func _get_uid(request: Dictionary) -> void:
	var file_path := str(request.get("filePath", ""))
	var id := ResourceLoader.get_resource_uid(file_path)
	if id == ResourceUID.INVALID_ID:
		_fail("no UID for: " + file_path)
		return
	_ok({"filePath": file_path, "uid": ResourceUID.id_to_text(id)})

func _resave_resources(_request: Dictionary) -> void:
	# Re-saving every resource regenerates missing .uid companion files.
	var resaved := 0
	var dirs := ["res://"]
	while not dirs.is_empty():
		var dir_path: String = dirs.pop_back()
		var dir := DirAccess.open(dir_path)
		if dir == null:
			continue
		dir.list_dir_begin()
		var entry := dir.get_next()
		while entry != "":
			var full := dir_path.path_join(entry)
			if dir.current_is_dir():
				if not entry.begins_with("."):
					dirs.push_back(full)
			elif entry.ends_with(".tscn") or entry.ends_with(".tres"):
				var res := load(full)
				if res != null and ResourceSaver.save(res, full) == OK:
					resaved += 1
			entry = dir.get_next()
		dir.list_dir_end()
	_ok({"resavedCount": resaved})

func _repack(packed: PackedScene, root: Node, scene_path: String) -> bool:
	var pack_err := packed.pack(root)
	if pack_err != OK:
		_fail("pack failed: " + error_string(pack_err))
		return false
	var save_err := ResourceSaver.save(packed, scene_path)
	if save_err != OK:
		_fail("save failed: " + error_string(save_err))
		return false
	return true
`
