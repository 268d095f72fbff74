package scaffold

import "strings"

// templateFile is one file within a project template. Occurrences of
// {{name}} in content are replaced with the project name.
type templateFile struct {
	name        string
	description string
	content     string
}

func (f templateFile) render(projectName string) string {
	return strings.ReplaceAll(f.content, "{{name}}", projectName)
}

// templates maps each template kind to the files it produces.
var templates = map[Template][]templateFile{
	TemplateEmpty: {
		projectGodot(""),
		iconSVG,
		gitIgnore,
		gitAttributes,
	},
	Template2D: {
		projectGodot("res://main.tscn"),
		iconSVG,
		gitIgnore,
		gitAttributes,
		{
			name:        "main.tscn",
			description: "starter 2D scene",
			content: `[gd_scene load_steps=2 format=3]

[ext_resource type="Script" path="res://main.gd" id="1"]

[node name="Main" type="Node2D"]
script = ExtResource("1")
`,
		},
		{
			name:        "main.gd",
			description: "starter 2D script",
			content: `extends Node2D


func _ready() -> void:
	pass
`,
		},
	},
	Template3D: {
		projectGodot("res://main.tscn"),
		iconSVG,
		gitIgnore,
		gitAttributes,
		{
			name:        "main.tscn",
			description: "starter 3D scene",
			content: `[gd_scene load_steps=2 format=3]

[ext_resource type="Script" path="res://main.gd" id="1"]

[node name="Main" type="Node3D"]
script = ExtResource("1")

[node name="Camera3D" type="Camera3D" parent="."]
transform = Transform3D(1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 2, 6)

[node name="DirectionalLight3D" type="DirectionalLight3D" parent="."]
transform = Transform3D(1, 0, 0, 0, 0.7, 0.7, 0, -0.7, 0.7, 0, 5, 0)
`,
		},
		{
			name:        "main.gd",
			description: "starter 3D script",
			content: `extends Node3D


func _ready() -> void:
	pass
`,
		},
	},
}

// projectGodot builds the project marker file, with an optional main scene.
func projectGodot(mainScene string) templateFile {
	content := `; Engine configuration file.
; It's best edited using the editor UI and not directly,
; since the parameters that go here are not all obvious.

config_version=5

[application]

config/name="{{name}}"
`
	if mainScene != "" {
		content += `run/main_scene="` + mainScene + `"
`
	}
	content += `config/features=PackedStringArray("4.2")
config/icon="res://icon.svg"
`
	return templateFile{
		name:        "project.godot",
		description: "project configuration",
		content:     content,
	}
}

var iconSVG = templateFile{
	name:        "icon.svg",
	description: "default project icon",
	content: `<svg height="128" width="128" xmlns="http://www.w3.org/2000/svg"><rect x="2" y="2" width="124" height="124" rx="14" fill="#363d52" stroke="#212532" stroke-width="4"/><circle cx="64" cy="64" r="38" fill="#478cbf"/></svg>
`,
}

var gitIgnore = templateFile{
	name:        ".gitignore",
	description: "ignore rules for Godot artifacts",
	content: `# Godot 4 specific ignores
.godot/
/android/
`,
}

var gitAttributes = templateFile{
	name:        ".gitattributes",
	description: "line-ending normalization",
	content: `# Normalize EOL for all files that Git considers text files.
* text=auto eol=lf
`,
}
