package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"firstLower": firstLower,
	"hex":        func(v uint16) string { return fmt.Sprintf("0x%X", v) },
	"quote":      func(s string) string { return fmt.Sprintf("%q", s) },
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	headerTmpl +
		bitMasksTmpl +
		groupMasksTmpl +
		registersTmpl +
		accessorsTmpl,
))

func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// --- Template data types ---

type fileData struct {
	Source     string
	Package    string
	Device     string
	WhoAmI     uint16
	BitMasks   []maskData
	GroupMasks []maskData
	Registers  []registerData
}

type maskData struct {
	Name        string
	Description string
	GoType      string
	VarName     string
	NeedsNone   bool
	Values      []maskValueData
}

type maskValueData struct {
	Name      string
	ConstName string
	Value     uint16
}

type registerData struct {
	Name        string
	Address     int
	GoType      string
	Width       string
	Kind        string
	Access      string
	Description string
	Writable    bool
	Volatile    bool
	NamedValues string
}

// --- Template definitions ---

const headerTmpl = `{{define "header"}}// Code generated by harpgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
"context"
"fmt"

"github.com/harp-protocol/harp-go/pkg/device"
"github.com/harp-protocol/harp-go/pkg/register"
)

// Name is the device family name.
const Name = {{quote .Device}}

// WhoAmI is the identity {{.Device}} devices report in register 0.
const WhoAmI uint16 = {{.WhoAmI}}{{end}}`

const bitMasksTmpl = `{{define "bitMasks"}}
{{- range .BitMasks}}
{{- $m := .}}

// {{.Name}} {{firstLower .Description}}
type {{.Name}} {{.GoType}}

const (
{{- if .NeedsNone}}
{{.Name}}None {{.Name}} = 0x0
{{- end}}
{{- range .Values}}
{{.ConstName}} {{$m.Name}} = {{hex .Value}}
{{- end}}
)

var {{.VarName}} = []register.Bit{
{{- range .Values}}
{Name: {{quote .Name}}, Value: {{hex .Value}}},
{{- end}}
}

func (v {{.Name}}) String() string {
return register.FormatFlags(uint16(v), {{.VarName}})
}
{{- end}}
{{- end}}`

const groupMasksTmpl = `{{define "groupMasks"}}
{{- range .GroupMasks}}
{{- $m := .}}

// {{.Name}} {{firstLower .Description}}
type {{.Name}} {{.GoType}}

const (
{{- range .Values}}
{{.ConstName}} {{$m.Name}} = {{.Value}}
{{- end}}
)

var {{.VarName}} = []register.Bit{
{{- range .Values}}
{Name: {{quote .Name}}, Value: {{.Value}}},
{{- end}}
}

func (v {{.Name}}) String() string {
switch v {
{{- range .Values}}
case {{.ConstName}}:
return {{quote .Name}}
{{- end}}
default:
return fmt.Sprintf("{{.Name}}(%d)", {{.GoType}}(v))
}
}
{{- end}}
{{- end}}`

const registersTmpl = `{{define "registers"}}

// Register addresses.
const (
{{- range .Registers}}
Address{{.Name}} uint8 = {{.Address}}
{{- end}}
)

// Device registers.
var (
{{- range $i, $r := .Registers}}
{{if $i}}
{{end}}// {{.Name}} {{firstLower .Description}}
{{.Name}} = register.Define[{{.GoType}}](register.Descriptor{
Address: Address{{.Name}},
Name: {{quote .Name}},
Width: {{.Width}},
Kind: {{.Kind}},
Access: {{.Access}},
{{- if .Volatile}}
Volatile: true,
{{- end}}
Description: {{quote .Description}},
})
{{- end}}
)

func deviceRegisters() []register.Descriptor {
return []register.Descriptor{
{{- range .Registers}}
{{.Name}}.Descriptor(),
{{- end}}
}
}

var namedValues = map[string][]register.Bit{
{{- range .Registers}}
{{- if .NamedValues}}
{{quote .Name}}: {{.NamedValues}},
{{- end}}
{{- end}}
}{{end}}`

const accessorsTmpl = `{{define "accessors"}}
{{- range .Registers}}

// Read{{.Name}} reads the {{.Name}} register.
func (d *Device) Read{{.Name}}(ctx context.Context) ({{.GoType}}, error) {
return device.Read(ctx, d.Device, {{.Name}})
}

// Read{{.Name}}Timestamped reads the {{.Name}} register with the device time of the reply.
func (d *Device) Read{{.Name}}Timestamped(ctx context.Context) (register.Timestamped[{{.GoType}}], error) {
return device.ReadTimestamped(ctx, d.Device, {{.Name}})
}
{{- if .Writable}}

// Write{{.Name}} writes the {{.Name}} register.
func (d *Device) Write{{.Name}}(ctx context.Context, v {{.GoType}}) error {
return device.Write(ctx, d.Device, {{.Name}}, v)
}
{{- end}}
{{- end}}
{{end}}`
