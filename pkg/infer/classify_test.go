package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapseed/pkg/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		column     string
		wantType   core.PrimitiveType
		wantRule   string
		wantPK     bool
		wantTarget string
	}{
		{name: "primary key", column: "id", wantType: core.TypeInt, wantRule: RulePrimaryKey, wantPK: true},
		{name: "bool flag", column: "isActive", wantType: core.TypeBool, wantRule: RuleBoolFlag},
		{name: "bool flag single letter", column: "isX", wantType: core.TypeBool, wantRule: RuleBoolFlag},
		{name: "lower-case after is", column: "isolate", wantType: core.TypeString, wantRule: RuleDefault},
		{name: "bare is", column: "is", wantType: core.TypeString, wantRule: RuleDefault},
		{name: "foreign key", column: "authorId", wantType: core.TypeInt, wantRule: RuleForeignKey, wantTarget: "Authors"},
		{name: "foreign key y plural", column: "categoryId", wantType: core.TypeInt, wantRule: RuleForeignKey, wantTarget: "Categories"},
		{name: "bool flag wins over suffix", column: "isUserId", wantType: core.TypeBool, wantRule: RuleBoolFlag},
		{name: "capital Id is not primary key", column: "Id", wantType: core.TypeInt, wantRule: RuleForeignKey, wantTarget: ""},
		{name: "upper ID is text", column: "ID", wantType: core.TypeString, wantRule: RuleDefault},
		{name: "lower id suffix is text", column: "paid", wantType: core.TypeString, wantRule: RuleDefault},
		{name: "default", column: "title", wantType: core.TypeString, wantRule: RuleDefault},
		{name: "empty", column: "", wantType: core.TypeString, wantRule: RuleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.column)

			assert.Equal(t, tt.column, d.Name)
			assert.Equal(t, tt.wantType, d.Type)
			assert.Equal(t, tt.wantRule, d.Rule)
			assert.Equal(t, tt.wantPK, d.PrimaryKey)

			if tt.wantRule != RuleForeignKey {
				assert.Nil(t, d.Relation)
				return
			}
			require.NotNil(t, d.Relation)
			assert.Equal(t, tt.wantTarget, d.Relation.TargetModel)
			assert.Equal(t, tt.column, d.Relation.ForeignKey)
			assert.Equal(t, "id", d.Relation.References)
			assert.Equal(t, "Cascade", d.Relation.OnDelete)
		})
	}
}

func TestClassify_RelationImpliesInt(t *testing.T) {
	for _, col := range []string{"id", "isActive", "authorId", "title", "Id", "orderItemId"} {
		d := Classify(col)
		if d.Relation != nil {
			assert.Equal(t, core.TypeInt, d.Type, "column %q", col)
		}
	}
}

func TestClassify_Stable(t *testing.T) {
	first := Classify("orderItemId")
	second := Classify("orderItemId")
	assert.Equal(t, first, second)
	assert.Equal(t, "orderItem", first.Relation.Field)
	assert.Equal(t, "OrderItems", first.Relation.TargetModel)
}

func TestClassifyModel(t *testing.T) {
	m := core.Model{Name: "Post", Columns: []string{"id", "isActive", "authorId", "title"}}

	decisions := ClassifyModel(m)

	require.Len(t, decisions, 4)
	assert.Equal(t, RulePrimaryKey, decisions[0].Rule)
	assert.Equal(t, RuleBoolFlag, decisions[1].Rule)
	assert.Equal(t, RuleForeignKey, decisions[2].Rule)
	assert.Equal(t, RuleDefault, decisions[3].Rule)
}

func TestClassifyModel_Empty(t *testing.T) {
	assert.Empty(t, ClassifyModel(core.Model{Name: "Empty"}))
}

func TestRules(t *testing.T) {
	assert.Equal(t, []string{RulePrimaryKey, RuleBoolFlag, RuleForeignKey, RuleDefault}, Rules())
}
