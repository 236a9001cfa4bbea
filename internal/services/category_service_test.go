package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashbook/internal/models"
)

func seedCategory(t *testing.T, svc *CategoryService, owner *models.User, name string, parent *uint) *models.Category {
	t.Helper()
	cat := &models.Category{
		OwnerID:      &owner.ID,
		Name:         name,
		CategoryType: models.CategoryFixedExpense,
		ParentID:     parent,
	}
	require.NoError(t, svc.Create(cat))
	return cat
}

func TestCategoryCreateWritesPathAndDepth(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	user := seedUser(t, db, "ana")

	root := seedCategory(t, svc, user, "Home", nil)
	child := seedCategory(t, svc, user, "Utilities", &root.ID)
	grandchild := seedCategory(t, svc, user, "Power", &child.ID)

	var got models.Category
	require.NoError(t, db.First(&got, grandchild.ID).Error)
	assert.Equal(t, fmt.Sprintf("%d/", root.ID), root.Path)
	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, fmt.Sprintf("%s%d/", root.Path, child.ID), child.Path)
	assert.Equal(t, 1, child.Depth)
	assert.Equal(t, fmt.Sprintf("%s%d/", child.Path, got.ID), got.Path)
	assert.Equal(t, 2, got.Depth)
}

func TestCategoryCreateUnknownParent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	user := seedUser(t, db, "ana")

	missing := uint(4242)
	cat := &models.Category{OwnerID: &user.ID, Name: "Orphan", CategoryType: models.CategoryIncome, ParentID: &missing}
	assert.ErrorIs(t, svc.Create(cat), ErrCategoryNotFound)
}

func TestCategoryDeleteCascadesAndClearsRecords(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	records := NewRecordService(db)
	user := seedUser(t, db, "ana")

	root := seedCategory(t, svc, user, "Home", nil)
	child := seedCategory(t, svc, user, "Utilities", &root.ID)
	grandchild := seedCategory(t, svc, user, "Power", &child.ID)
	sibling := seedCategory(t, svc, user, "Food", nil)

	rec := &models.Record{
		OwnerID:    user.ID,
		RecordType: models.RecordExpense,
		Amount:     amount("10.00"),
		CategoryID: &grandchild.ID,
	}
	require.NoError(t, records.Create(rec))

	require.NoError(t, svc.Delete(root.ID))

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(1), count, "only the unrelated sibling survives")

	var survivor models.Category
	require.NoError(t, db.First(&survivor).Error)
	assert.Equal(t, sibling.ID, survivor.ID)

	var stored models.Record
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Nil(t, stored.CategoryID, "record keeps living with its category cleared")
}

func TestCategoryMoveRewritesSubtree(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	user := seedUser(t, db, "ana")

	oldRoot := seedCategory(t, svc, user, "Old", nil)
	node := seedCategory(t, svc, user, "Node", &oldRoot.ID)
	leaf := seedCategory(t, svc, user, "Leaf", &node.ID)
	newRoot := seedCategory(t, svc, user, "New", nil)

	require.NoError(t, svc.Move(node.ID, &newRoot.ID))

	var movedNode, movedLeaf models.Category
	require.NoError(t, db.First(&movedNode, node.ID).Error)
	require.NoError(t, db.First(&movedLeaf, leaf.ID).Error)

	assert.Equal(t, &newRoot.ID, movedNode.ParentID)
	assert.Equal(t, 1, movedNode.Depth)
	assert.Equal(t, 2, movedLeaf.Depth)
	assert.Contains(t, movedNode.Path, newRoot.Path)
	assert.Contains(t, movedLeaf.Path, movedNode.Path)
	assert.NotContains(t, movedLeaf.Path, oldRoot.Path)
}

func TestCategoryMoveRejectsOwnSubtree(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	user := seedUser(t, db, "ana")

	root := seedCategory(t, svc, user, "Root", nil)
	child := seedCategory(t, svc, user, "Child", &root.ID)

	assert.ErrorIs(t, svc.Move(root.ID, &child.ID), ErrCategoryCycle)
	assert.ErrorIs(t, svc.Move(root.ID, &root.ID), ErrCategoryCycle)
}

func TestCategoryTreeOrdersSiblingsByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	user := seedUser(t, db, "ana")

	root := seedCategory(t, svc, user, "Root", nil)
	seedCategory(t, svc, user, "Zebra", &root.ID)
	seedCategory(t, svc, user, "Apple", &root.ID)
	seedCategory(t, svc, user, "Mango", &root.ID)

	tree, err := svc.Tree(nil)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 3)
	assert.Equal(t, "Apple", tree[0].Children[0].Name)
	assert.Equal(t, "Mango", tree[0].Children[1].Name)
	assert.Equal(t, "Zebra", tree[0].Children[2].Name)
}

func TestCategoryTreeScopedToOwnerIncludesGlobals(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	ana := seedUser(t, db, "ana")
	bob := seedUser(t, db, "bob")

	seedCategory(t, svc, ana, "Mine", nil)
	seedCategory(t, svc, bob, "Theirs", nil)
	global := &models.Category{Name: "Shared", CategoryType: models.CategoryParent}
	require.NoError(t, svc.Create(global))

	tree, err := svc.Tree(&ana.ID)
	require.NoError(t, err)

	names := make([]string, 0, len(tree))
	for _, n := range tree {
		names = append(names, n.Name)
	}
	assert.ElementsMatch(t, []string{"Mine", "Shared"}, names)
}
