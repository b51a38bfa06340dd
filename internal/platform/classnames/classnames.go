// Package classnames combina listas condicionales de clases utilitarias y
// resuelve conflictos entre clases del mismo grupo: gana la última.
package classnames

import (
	"slices"
	"sort"
	"strings"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
)

// Palette son los colores custom del portal (además de la paleta estándar).
var Palette = map[string]struct{}{
	"primary":     {},
	"secondary":   {},
	"accent":      {},
	"background":  {},
	"foreground":  {},
	"muted":       {},
	"destructive": {},
	"cream":       {},
	"sand":        {},
	"sage":        {},
	"forest":      {},
	"terracotta":  {},
}

// utilidad -> grupo de color donde se registra la paleta
var colorGroups = map[string]string{
	"bg":     "bg-color",
	"text":   "text-color",
	"border": "border-color",
	"ring":   "ring-color",
}

var merger = newMerger()

func newMerger() twmerge.TwMergeFn {
	cfg := twmerge.MakeDefaultConfig()
	for util, group := range colorGroups {
		part := cfg.ClassGroups.NextPart[util]
		if part.NextPart == nil {
			part.NextPart = map[string]twmerge.ClassPart{}
		}
		for color := range Palette {
			part.NextPart[color] = twmerge.ClassPart{ClassGroupId: group}
		}
		cfg.ClassGroups.NextPart[util] = part
	}

	merge := twmerge.CreateTwMerge(cfg, nil)
	// la librería se inicializa en la primera llamada y eso no es seguro entre goroutines
	merge("")
	return merge
}

// Join aplana partes condicionales a una lista de clases:
// string, []string, []any y map[string]bool (keys con true, orden alfabético).
// nil, bool y strings vacíos se ignoran.
func Join(parts ...any) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, strings.Fields(v)...)
		case []string:
			for _, s := range v {
				out = append(out, strings.Fields(s)...)
			}
		case []any:
			out = append(out, Join(v...)...)
		case map[string]bool:
			keys := make([]string, 0, len(v))
			for k, on := range v {
				if on {
					keys = append(keys, k)
				}
			}
			sort.Strings(keys)
			for _, k := range keys {
				out = append(out, strings.Fields(k)...)
			}
		}
	}
	return out
}

// Merge = Join + resolución de conflictos con tailwind-merge. Dentro de un
// mismo grupo (y mismas variantes, p.ej. "hover:") queda la última clase.
// El resultado conserva el orden de entrada.
func Merge(parts ...any) string {
	classes := Join(parts...)
	if len(classes) == 0 {
		return ""
	}

	// twmerge decide qué sobrevive pero no preserva el orden
	left := map[string]int{}
	for _, c := range strings.Fields(merger(classes...)) {
		left[c]++
	}

	kept := make([]string, 0, len(classes))
	for i := len(classes) - 1; i >= 0; i-- {
		c := classes[i]
		if left[c] == 0 {
			continue
		}
		left[c]--
		kept = append(kept, c)
	}
	slices.Reverse(kept)
	return strings.Join(kept, " ")
}
