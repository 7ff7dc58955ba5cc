package particle

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is a closed interval a parameter is drawn from.
// A fixed value is a Range with Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed 返回固定值区间
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Between 返回 [min, max] 区间
func Between(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// Sample 从区间中均匀抽取一个值
func (r Range) Sample(rng *rand.Rand) float64 {
	return RandomInRange(rng, r.Min, r.Max)
}

// Contains 判断 v 是否在闭区间内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IsZero 区间是否未配置
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Mid 区间中点
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// String 以配置文件格式输出
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}

// ParseRange parses a value string from a pool definition.
// Supports:
//   - Fixed value: "1500" → {1500, 1500}
//   - Range: "[0.7 0.9]" → {0.7, 0.9}
//   - Single bracketed value: "[3]" → {3, 3}
//
// Reversed bounds are normalized so that Min <= Max.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, nil
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		parts := strings.Fields(strings.ReplaceAll(inner, ",", " "))
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range value %q: %w", s, err)
			}
			return Fixed(v), nil
		case 2:
			lo, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range min %q: %w", s, err)
			}
			hi, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range max %q: %w", s, err)
			}
			if lo > hi {
				lo, hi = hi, lo
			}
			return Between(lo, hi), nil
		default:
			return Range{}, fmt.Errorf("range %q must have one or two values", s)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// UnmarshalYAML 支持标量（"[0.3 0.7]"、"12"、12）和序列（[0.3, 0.7]）两种写法
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseRange(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: range items must be scalars", item.Line)
			}
			values = append(values, item.Value)
		}
		parsed, err := ParseRange("[" + strings.Join(values, " ") + "]")
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	default:
		return fmt.Errorf("line %d: unsupported range node", node.Line)
	}
}

// MarshalYAML 输出与 ParseRange 对称的字符串
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// Keyframe represents a single keyframe in an animation curve.
// Time is normalized (0-1) within the owning window.
type Keyframe struct {
	Time  float64
	Value float64
}

// RandomInRange returns a random float64 in the range [min, max] drawn from rng.
// Degenerate ranges return min without consuming randomness.
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// Staggered maps a window progress t (0-1) to the progress of one particle
// whose ramp starts at offset. span is the largest offset in the pool; every
// ramp has length 1-span so the last particle still finishes at t = 1.
func Staggered(t, offset, span float64) float64 {
	if t != t || t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if span <= 0 || span >= 1 {
		return t
	}
	v := (t - offset) / (1 - span)
	return math.Max(0, math.Min(1, v))
}
