// Package infer classifies column names into primitive types and relations.
//
// Classification looks at the name alone. Rules are evaluated in table order
// and the first match wins, so "id" never reaches the foreign-key rule and
// "isUserId" is a boolean.
package infer

import (
	"strings"

	"github.com/leapstack-labs/leapseed/internal/naming"
	"github.com/leapstack-labs/leapseed/pkg/core"
)

// Rule names, as reported in ColumnDecision.Rule.
const (
	RulePrimaryKey = "primary_key"
	RuleBoolFlag   = "bool_flag"
	RuleForeignKey = "foreign_key"
	RuleDefault    = "default"
)

const (
	primaryKeyColumn = "id"
	boolPrefix       = "is"
	foreignKeySuffix = "Id"
	onDeleteCascade  = "Cascade"
)

type rule struct {
	name   string
	match  func(name string) bool
	decide func(name string) core.ColumnDecision
}

// rules must stay in this order.
var rules = []rule{
	{
		name:  RulePrimaryKey,
		match: func(name string) bool { return name == primaryKeyColumn },
		decide: func(name string) core.ColumnDecision {
			return core.ColumnDecision{Name: name, Type: core.TypeInt, PrimaryKey: true}
		},
	},
	{
		name:  RuleBoolFlag,
		match: isBoolFlag,
		decide: func(name string) core.ColumnDecision {
			return core.ColumnDecision{Name: name, Type: core.TypeBool}
		},
	},
	{
		name:  RuleForeignKey,
		match: func(name string) bool { return strings.HasSuffix(name, foreignKeySuffix) },
		decide: func(name string) core.ColumnDecision {
			return core.ColumnDecision{Name: name, Type: core.TypeInt, Relation: relationFor(name)}
		},
	},
	{
		name:  RuleDefault,
		match: func(string) bool { return true },
		decide: func(name string) core.ColumnDecision {
			return core.ColumnDecision{Name: name, Type: core.TypeString}
		},
	},
}

// isBoolFlag reports whether name is "is" followed by an ASCII upper-case letter.
func isBoolFlag(name string) bool {
	if len(name) <= len(boolPrefix) || !strings.HasPrefix(name, boolPrefix) {
		return false
	}
	c := name[len(boolPrefix)]
	return c >= 'A' && c <= 'Z'
}

func relationFor(name string) *core.Relation {
	field := strings.TrimSuffix(name, foreignKeySuffix)
	return &core.Relation{
		Field:       field,
		TargetModel: TargetModel(field),
		ForeignKey:  name,
		References:  primaryKeyColumn,
		OnDelete:    onDeleteCascade,
	}
}

// TargetModel returns the model a relation field points at: the pascal-cased,
// pluralized field ("category" -> "Categories").
func TargetModel(field string) string {
	return naming.Plural(naming.Pascal(field))
}

// Classify returns the decision for a single column name. It never fails.
func Classify(name string) core.ColumnDecision {
	for _, r := range rules {
		if r.match(name) {
			d := r.decide(name)
			d.Rule = r.name
			return d
		}
	}
	// unreachable: the default rule matches everything
	return core.ColumnDecision{Name: name, Type: core.TypeString, Rule: RuleDefault}
}

// ClassifyModel classifies every column of m in column order.
func ClassifyModel(m core.Model) []core.ColumnDecision {
	decisions := make([]core.ColumnDecision, len(m.Columns))
	for i, col := range m.Columns {
		decisions[i] = Classify(col)
	}
	return decisions
}

// Rules returns the rule names in evaluation order.
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}
