package prisma

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapseed/pkg/core"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		model core.Model
		want  string
	}{
		{
			name:  "mixed columns",
			model: core.Model{Name: "Post", Columns: []string{"id", "isActive", "authorId", "title"}},
			want: "model Post {\n" +
				"  id Int @id @default(autoincrement())\n" +
				"  isActive Boolean\n" +
				"  authorId Int\n" +
				"  author Authors @relation(fields: [authorId], references: [id], onDelete: Cascade)\n" +
				"  title String\n" +
				"}\n\n",
		},
		{
			name:  "no columns",
			model: core.Model{Name: "Empty"},
			want:  "model Empty {\n  \n}\n\n",
		},
		{
			name:  "single text column",
			model: core.Model{Name: "Tags", Columns: []string{"label"}},
			want:  "model Tags {\n  label String\n}\n\n",
		},
		{
			name:  "plural target",
			model: core.Model{Name: "Products", Columns: []string{"categoryId"}},
			want: "model Products {\n" +
				"  categoryId Int\n" +
				"  category Categories @relation(fields: [categoryId], references: [id], onDelete: Cascade)\n" +
				"}\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.model))
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	m := core.Model{Name: "Users", Columns: []string{"id", "isAdmin", "roleId", "name"}}
	assert.Equal(t, Render(m), Render(m))
}

func TestRender_OnlyLiteralIDIsPrimaryKey(t *testing.T) {
	out := Render(core.Model{Name: "Orders", Columns: []string{"id", "userId", "quantity"}})

	assert.Equal(t, 1, strings.Count(out, "@id"))
	assert.Contains(t, out, "  userId Int\n")
}

func TestRenderDocument(t *testing.T) {
	models := []core.Model{
		{Name: "Authors", Columns: []string{"id", "name"}},
		{Name: "Posts", Columns: []string{"id", "authorId"}},
	}

	doc := RenderDocument(models)

	assert.Equal(t, Render(models[0])+Render(models[1]), doc)
	assert.Less(t, strings.Index(doc, "model Authors"), strings.Index(doc, "model Posts"))
	assert.Empty(t, RenderDocument(nil))
}
