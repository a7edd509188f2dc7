// Package builtinstub loads the embedded (or config-overridden) YAML
// description of the checker's built-in classes — int, str, list<T>,
// object, BaseException, and friends — into the live types.ClassInfo
// graph the checker's __builtins__ scope is seeded from.
package builtinstub

import (
	"embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"gradus/pkg/types"
)

//go:embed builtins.yaml
var embeddedFS embed.FS

type stubMethod struct {
	Params []string `yaml:"params"`
	Ret    string   `yaml:"ret"`
}

type stubClass struct {
	Name           string                `yaml:"name"`
	Base           string                `yaml:"base"`
	Interfaces     []string              `yaml:"interfaces"`
	IsInterface    bool                  `yaml:"is_interface"`
	TypeParameters []string              `yaml:"type_parameters"`
	Methods        map[string]stubMethod `yaml:"methods"`
}

type stubFile struct {
	Classes []stubClass `yaml:"classes"`
}

// Builtins is the resolved __builtins__ scope: every stub class
// keyed by name, plus direct handles to the handful of classes the
// checker's statement logic references by identity (object, list,
// BaseException, Iterable).
type Builtins struct {
	Classes map[string]*types.ClassInfo

	Object        *types.ClassInfo
	BaseException *types.ClassInfo
	List          *types.ClassInfo
	Iterable      *types.ClassInfo
	Iterator      *types.ClassInfo
}

// Load reads the embedded builtins.yaml. overridePath, if non-empty,
// is read from disk instead (CheckerConfig.BuiltinStubPath).
func Load(overridePath string) (*Builtins, error) {
	var raw []byte
	var err error
	if overridePath != "" {
		raw, err = readFile(overridePath)
	} else {
		raw, err = embeddedFS.ReadFile("builtins.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("builtinstub: %w", err)
	}

	var sf stubFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("builtinstub: parsing stub file: %w", err)
	}
	return build(sf)
}

func build(sf stubFile) (*Builtins, error) {
	b := &Builtins{Classes: make(map[string]*types.ClassInfo)}

	// A handful of class names are pinned to the package-level
	// singletons in pkg/types (object, list, Iterable, BaseException):
	// the subtype judgments compare *ClassInfo by pointer identity, so
	// the well-known classes the checker references directly
	// (types.ObjectClass, types.ListClass, …) must be the very same
	// instances the builtins scope resolves those names to, not a
	// second structurally-equal copy. Their base/interfaces are
	// already wired by types' own init(); only their method tables
	// come from this file.
	singletons := map[string]*types.ClassInfo{
		"object":       types.ObjectClass,
		"BaseException": types.BaseExceptionClass,
		"Iterable":     types.IterableClass,
		"list":         types.ListClass,
	}

	// Pass 1: create every ClassInfo shell with its type parameters,
	// so forward/self/mutually-recursive references (e.g. list's
	// Iterable<T> interface, Iterator's Iterable<T>) resolve.
	tparams := make(map[string][]*types.TypeParameter)
	for _, sc := range sf.Classes {
		if ci, ok := singletons[sc.Name]; ok {
			b.Classes[sc.Name] = ci
			tparams[sc.Name] = ci.TypeParameters
			continue
		}
		ci := types.NewClassInfo(sc.Name)
		ci.IsInterface = sc.IsInterface
		var tps []*types.TypeParameter
		for _, name := range sc.TypeParameters {
			tps = append(tps, &types.TypeParameter{Name: name})
		}
		ci.TypeParameters = tps
		tparams[sc.Name] = tps
		b.Classes[sc.Name] = ci
	}

	// Pass 2: wire base/interfaces/methods now that every name resolves.
	for _, sc := range sf.Classes {
		ci := b.Classes[sc.Name]
		scope := tparams[sc.Name]
		_, isSingleton := singletons[sc.Name]

		if !isSingleton {
			if sc.Base != "" {
				base, ok := b.Classes[sc.Base]
				if !ok {
					return nil, fmt.Errorf("builtinstub: %s: unknown base %q", sc.Name, sc.Base)
				}
				ci.Base = base
			}

			for _, ifaceStr := range sc.Interfaces {
				name, args := parseNameArgs(ifaceStr)
				iface, ok := b.Classes[name]
				if !ok {
					return nil, fmt.Errorf("builtinstub: %s: unknown interface %q", sc.Name, name)
				}
				resolvedArgs, err := resolveTypeList(args, b.Classes, scope)
				if err != nil {
					return nil, fmt.Errorf("builtinstub: %s implements %s: %w", sc.Name, ifaceStr, err)
				}
				ci.Interfaces = append(ci.Interfaces, iface)
				ci.InterfaceTypeArgs = append(ci.InterfaceTypeArgs, resolvedArgs)
			}
		}

		for name, m := range sc.Methods {
			params := make([]types.Type, len(m.Params))
			for i, p := range m.Params {
				t, err := resolveTypeString(p, b.Classes, scope)
				if err != nil {
					return nil, fmt.Errorf("builtinstub: %s.%s param %d: %w", sc.Name, name, i, err)
				}
				params[i] = t
			}
			ret, err := resolveTypeString(m.Ret, b.Classes, scope)
			if err != nil {
				return nil, fmt.Errorf("builtinstub: %s.%s return: %w", sc.Name, name, err)
			}
			ci.Methods[name] = &types.Callable{
				Params:  params,
				MinArgs: len(params),
				Ret:     ret,
				Name:    name,
			}
		}
	}

	b.Object = b.Classes["object"]
	b.BaseException = b.Classes["BaseException"]
	b.List = b.Classes["list"]
	b.Iterable = b.Classes["Iterable"]
	b.Iterator = b.Classes["Iterator"]
	return b, nil
}

// resolveTypeString parses one type-string cell from the YAML
// ("int", "Any", "void", "list<int>", "T") into a types.Type,
// resolving bare names against either a type-parameter scope (for
// T/K/V placeholders) or the class table.
func resolveTypeString(s string, classes map[string]*types.ClassInfo, scope []*types.TypeParameter) (types.Type, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "Any":
		return types.Any, nil
	case "void":
		return types.Void, nil
	case "None", "NoneType":
		return types.NoneType, nil
	}
	name, args := parseNameArgs(s)
	for _, tp := range scope {
		if tp.Name == name && len(args) == 0 {
			return &types.TypeParameterType{Parameter: tp}, nil
		}
	}
	ci, ok := classes[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	resolvedArgs, err := resolveTypeList(args, classes, scope)
	if err != nil {
		return nil, err
	}
	return &types.Instance{Class: ci, Args: resolvedArgs}, nil
}

func resolveTypeList(args []string, classes map[string]*types.ClassInfo, scope []*types.TypeParameter) ([]types.Type, error) {
	out := make([]types.Type, len(args))
	for i, a := range args {
		t, err := resolveTypeString(a, classes, scope)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// parseNameArgs splits "list<int>" into ("list", ["int"]) and
// "Iterable<T>" into ("Iterable", ["T"]); a name with no "<...>"
// returns a nil arg list.
func parseNameArgs(s string) (string, []string) {
	s = strings.TrimSpace(s)
	lt := strings.IndexByte(s, '<')
	if lt < 0 || !strings.HasSuffix(s, ">") {
		return s, nil
	}
	name := s[:lt]
	inner := s[lt+1 : len(s)-1]
	var args []string
	depth := 0
	start := 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return name, args
}
