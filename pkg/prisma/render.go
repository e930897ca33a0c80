// Package prisma renders inferred models as Prisma schema model blocks.
package prisma

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapseed/pkg/core"
	"github.com/leapstack-labs/leapseed/pkg/infer"
)

// lineSep joins field lines inside a model block.
const lineSep = "\n  "

// Render returns the model block for m. The output depends only on m's name
// and columns, and ends with a blank line so blocks can be concatenated.
func Render(m core.Model) string {
	return RenderDecisions(m.Name, infer.ClassifyModel(m))
}

// RenderDecisions renders a model block from precomputed decisions.
func RenderDecisions(name string, decisions []core.ColumnDecision) string {
	lines := make([]string, 0, len(decisions))
	for _, d := range decisions {
		lines = append(lines, fieldLines(d)...)
	}

	var sb strings.Builder
	sb.WriteString("model ")
	sb.WriteString(name)
	sb.WriteString(" {\n  ")
	sb.WriteString(strings.Join(lines, lineSep))
	sb.WriteString("\n}\n\n")
	return sb.String()
}

// RenderDocument concatenates the blocks of models in slice order.
func RenderDocument(models []core.Model) string {
	var sb strings.Builder
	for _, m := range models {
		sb.WriteString(Render(m))
	}
	return sb.String()
}

func fieldLines(d core.ColumnDecision) []string {
	switch {
	case d.PrimaryKey:
		return []string{fmt.Sprintf("%s %s @id @default(autoincrement())", d.Name, d.Type.PrismaType())}
	case d.Relation != nil:
		r := d.Relation
		return []string{
			fmt.Sprintf("%s %s", d.Name, d.Type.PrismaType()),
			fmt.Sprintf("%s %s @relation(fields: [%s], references: [%s], onDelete: %s)",
				r.Field, r.TargetModel, r.ForeignKey, r.References, r.OnDelete),
		}
	default:
		return []string{fmt.Sprintf("%s %s", d.Name, d.Type.PrismaType())}
	}
}
