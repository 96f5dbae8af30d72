package document

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// ErrMultipleDocuments is returned when the input contains more than one YAML document.
var ErrMultipleDocuments = errors.New("multiple documents in stream")

// tupleTag is the sequence tag that marks an ordered, fixed-size record.
const tupleTag = "!!python/tuple"

// tupleTagLong is the fully qualified form of tupleTag.
const tupleTagLong = "tag:yaml.org,2002:python/tuple"

// Tuple is an ordered, fixed-size sequence decoded from a !!python/tuple
// tagged node. It is distinguishable from a plain []any by type assertion,
// which downstream consumers rely on for positional records.
type Tuple []any

// MarshalYAML encodes the tuple as a flow sequence carrying the tuple tag,
// so that decoding the output restores a Tuple rather than a list.
func (t Tuple) MarshalYAML() ([]byte, error) {
	b, err := yaml.MarshalWithOptions([]any(t), yaml.Flow(true))
	if err != nil {
		return nil, fmt.Errorf("marshal tuple: %w", err)
	}

	return append([]byte(tupleTag+" "), bytes.TrimSpace(b)...), nil
}

// Decode parses a single YAML document into plain Go values: map[string]any
// for mappings, []any for sequences, Tuple for tuple-tagged sequences, and
// string/int/float64/bool/nil scalars. An empty document decodes to nil.
func Decode(data []byte) (any, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if len(file.Docs) == 0 {
		return nil, nil
	}

	if len(file.Docs) > 1 {
		return nil, ErrMultipleDocuments
	}

	c := &constructor{anchors: make(map[string]any)}

	return c.construct(file.Docs[0].Body)
}

// Encode writes a value as a block-style YAML document using the same safe
// subset Decode reads.
func Encode(v any) ([]byte, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode error: %w", err)
	}

	return b, nil
}

// constructor builds Go values from a parsed AST. Anchored values are kept
// for later alias references within the same document.
type constructor struct {
	anchors map[string]any
}

func (c *constructor) construct(node ast.Node) (any, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case *ast.NullNode:
		return nil, nil
	case *ast.BoolNode:
		return n.Value, nil
	case *ast.IntegerNode:
		return narrowInt(n.Value), nil
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.InfinityNode:
		return n.Value, nil
	case *ast.NanNode:
		return math.NaN(), nil
	case *ast.StringNode:
		return c.constructString(n), nil
	case *ast.LiteralNode:
		return n.Value.Value, nil
	case *ast.SequenceNode:
		return c.constructSequence(n)
	case *ast.MappingNode:
		return c.constructMapping(n.Values)
	case *ast.MappingValueNode:
		return c.constructMapping([]*ast.MappingValueNode{n})
	case *ast.MappingKeyNode:
		return c.construct(n.Value)
	case *ast.TagNode:
		return c.constructTag(n)
	case *ast.AnchorNode:
		return c.constructAnchor(n)
	case *ast.AliasNode:
		name := nodeText(n.Value)

		v, ok := c.anchors[name]
		if !ok {
			return nil, fmt.Errorf("undefined alias %q", name)
		}

		return v, nil
	default:
		return nil, fmt.Errorf("unsupported node type %s", node.Type())
	}
}

// constructString decodes a string scalar, reinterpreting plain (unquoted)
// scalars that match the extended float grammar as float64.
func (c *constructor) constructString(n *ast.StringNode) any {
	if n.Token != nil && n.Token.Type == token.StringType {
		if f, ok := parseImplicitFloat(n.Value); ok {
			return f
		}
	}

	return n.Value
}

func (c *constructor) constructSequence(n *ast.SequenceNode) (any, error) {
	items := make([]any, 0, len(n.Values))

	for _, v := range n.Values {
		item, err := c.construct(v)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func (c *constructor) constructMapping(values []*ast.MappingValueNode) (any, error) {
	m := make(map[string]any, len(values))

	// Merge sources fill gaps only, in order: explicit keys always win, and
	// the first merge source providing a key wins over later ones.
	var merges []map[string]any

	for _, mv := range values {
		if _, isMerge := mv.Key.(*ast.MergeKeyNode); isMerge {
			sources, err := c.mergeSources(mv.Value)
			if err != nil {
				return nil, err
			}

			merges = append(merges, sources...)

			continue
		}

		key, err := c.constructKey(mv.Key)
		if err != nil {
			return nil, err
		}

		val, err := c.construct(mv.Value)
		if err != nil {
			return nil, err
		}

		m[key] = val
	}

	for _, src := range merges {
		for k, v := range src {
			if _, exists := m[k]; !exists {
				m[k] = v
			}
		}
	}

	return m, nil
}

// constructKey builds a mapping key. Non-string scalar keys are stringified,
// since the decoded representation is map[string]any.
func (c *constructor) constructKey(node ast.Node) (string, error) {
	v, err := c.construct(node)
	if err != nil {
		return "", err
	}

	if s, ok := v.(string); ok {
		return s, nil
	}

	return fmt.Sprintf("%v", v), nil
}

// mergeSources resolves the value of a merge key (<<) into the mappings to
// merge: either a single mapping or a sequence of mappings.
func (c *constructor) mergeSources(node ast.Node) ([]map[string]any, error) {
	v, err := c.construct(node)
	if err != nil {
		return nil, err
	}

	switch src := v.(type) {
	case map[string]any:
		return []map[string]any{src}, nil
	case []any:
		sources := make([]map[string]any, 0, len(src))

		for _, item := range src {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("merge key requires mappings, got %T", item)
			}

			sources = append(sources, m)
		}

		return sources, nil
	default:
		return nil, fmt.Errorf("merge key requires a mapping, got %T", v)
	}
}

func (c *constructor) constructAnchor(n *ast.AnchorNode) (any, error) {
	v, err := c.construct(n.Value)
	if err != nil {
		return nil, err
	}

	if n.Name != nil {
		c.anchors[nodeText(n.Name)] = v
	}

	return v, nil
}

// constructTag decodes an explicitly tagged node. The tuple tag is the single
// application-specific construct; the remaining standard tags coerce to their
// safe defaults, and anything else is rejected.
func (c *constructor) constructTag(n *ast.TagNode) (any, error) {
	raw := ""
	if n.Start != nil {
		raw = n.Start.Value
	}

	switch tag := normalizeTag(raw); tag {
	case "python/tuple":
		seq, ok := n.Value.(*ast.SequenceNode)
		if !ok {
			return nil, fmt.Errorf("%s tag requires a sequence", tupleTag)
		}

		items, err := c.constructSequence(seq)
		if err != nil {
			return nil, err
		}

		list, _ := items.([]any)

		return Tuple(list), nil
	case "str":
		return scalarText(n.Value)
	case "int":
		text, err := scalarText(n.Value)
		if err != nil {
			return nil, err
		}

		i, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid !!int scalar %q: %w", text, err)
		}

		return narrowInt(i), nil
	case "float":
		text, err := scalarText(n.Value)
		if err != nil {
			return nil, err
		}

		if f, ok := parseImplicitFloat(text); ok {
			return f, nil
		}

		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid !!float scalar %q: %w", text, err)
		}

		return f, nil
	case "bool":
		text, err := scalarText(n.Value)
		if err != nil {
			return nil, err
		}

		return parseBool(text)
	case "null":
		return nil, nil
	case "seq", "map":
		return c.construct(n.Value)
	case "binary":
		text, err := scalarText(n.Value)
		if err != nil {
			return nil, err
		}

		b, err := decodeBase64(text)
		if err != nil {
			return nil, fmt.Errorf("invalid !!binary scalar: %w", err)
		}

		return b, nil
	case "timestamp":
		return scalarText(n.Value)
	default:
		return nil, fmt.Errorf("cannot construct tag %q", raw)
	}
}

// normalizeTag reduces a tag token to its bare suffix: "!!python/tuple" and
// "!<tag:yaml.org,2002:python/tuple>" both normalize to "python/tuple".
func normalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)

	if strings.HasPrefix(tag, "!<") && strings.HasSuffix(tag, ">") {
		tag = strings.TrimSuffix(strings.TrimPrefix(tag, "!<"), ">")
	}

	tag = strings.TrimPrefix(tag, "tag:yaml.org,2002:")
	tag = strings.TrimPrefix(tag, "!!")

	return tag
}

// scalarText returns the source text of a scalar node, bypassing implicit
// typing; used when an explicit tag overrides the default interpretation.
func scalarText(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value.Value, nil
	case *ast.StringNode, *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode,
		*ast.NullNode, *ast.InfinityNode, *ast.NanNode:
		return nodeText(node), nil
	default:
		return "", fmt.Errorf("tag requires a scalar, got %s", node.Type())
	}
}

// decodeBase64 decodes !!binary content, tolerating the line breaks and
// indentation YAML wraps long payloads with.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}

		return r
	}, s)

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	return b, nil
}

func nodeText(node ast.Node) string {
	if tok := node.GetToken(); tok != nil {
		return tok.Value
	}

	return node.String()
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid !!bool scalar %q", s)
	}
}

// narrowInt converts parsed integers to the platform int when they fit,
// matching how YAML decoders surface integers through any-typed values.
func narrowInt(v any) any {
	switch i := v.(type) {
	case int64:
		if i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}

		return i
	case uint64:
		if i <= math.MaxInt {
			return int(i)
		}

		return i
	default:
		return v
	}
}

// implicitFloat recognizes plain scalars that must decode as floats even when
// the base grammar reads them as strings: exponent forms without a decimal
// point, leading- and trailing-dot forms, underscore digit groups, sexagesimal
// values, and infinity/NaN with or without the leading dot, in any case.
var implicitFloat = regexp.MustCompile(`^(?:` +
	`[-+]?[0-9][0-9_]*\.[0-9_]*(?:[eE][-+]?[0-9]+)?` +
	`|[-+]?[0-9][0-9_]*[eE][-+]?[0-9]+` +
	`|[-+]?\.[0-9_]+(?:[eE][-+]?[0-9]+)?` +
	`|[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+\.[0-9_]*` +
	`|[-+]?\.?(?i:inf)` +
	`|[-+]?\.?(?i:nan)` +
	`)$`)

// parseImplicitFloat reports whether s matches the extended float grammar and
// returns its value when it does.
func parseImplicitFloat(s string) (float64, bool) {
	if !implicitFloat.MatchString(s) {
		return 0, false
	}

	t := strings.ReplaceAll(s, "_", "")

	switch lower := strings.ToLower(t); {
	case strings.HasSuffix(lower, "inf"):
		if strings.HasPrefix(t, "-") {
			return math.Inf(-1), true
		}

		return math.Inf(1), true
	case strings.HasSuffix(lower, "nan"):
		return math.NaN(), true
	}

	if strings.Contains(t, ":") {
		return parseSexagesimal(t)
	}

	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// parseSexagesimal evaluates base-60 float notation such as 190:20:30.15.
func parseSexagesimal(s string) (float64, bool) {
	sign := 1.0

	switch s[0] {
	case '-':
		sign, s = -1, s[1:]
	case '+':
		s = s[1:]
	}

	var total float64

	for _, part := range strings.Split(s, ":") {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, false
		}

		total = total*60 + f
	}

	return sign * total, true
}
