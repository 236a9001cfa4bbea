package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cashbook/internal/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryCycle    = errors.New("category cannot be moved under its own subtree")
)

// CategoryService maintains the category tree. Every node carries a
// materialized path and depth so subtree queries are a single LIKE and tree
// rendering never walks parent pointers at request time.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Create inserts the category and writes its path and depth. The path needs
// the generated id, so it is written in a second statement inside the same
// transaction.
func (s *CategoryService) Create(cat *models.Category) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var parent *models.Category
		if cat.ParentID != nil {
			parent = &models.Category{}
			if err := tx.First(parent, *cat.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Create(cat).Error; err != nil {
			return err
		}

		if parent != nil {
			cat.Path = fmt.Sprintf("%s%d/", parent.Path, cat.ID)
			cat.Depth = parent.Depth + 1
		} else {
			cat.Path = fmt.Sprintf("%d/", cat.ID)
			cat.Depth = 0
		}
		return tx.Model(cat).Updates(map[string]interface{}{
			"path":  cat.Path,
			"depth": cat.Depth,
		}).Error
	})
}

// Move reparents a category (nil parent makes it a root) and rewrites path
// and depth across its entire subtree.
func (s *CategoryService) Move(id uint, newParentID *uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.MoveTx(tx, id, newParentID)
	})
}

// MoveTx is Move inside an existing transaction.
func (s *CategoryService) MoveTx(tx *gorm.DB, id uint, newParentID *uint) error {
	var cat models.Category
	if err := tx.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	newPath := fmt.Sprintf("%d/", cat.ID)
	newDepth := 0
	if newParentID != nil {
		var parent models.Category
		if err := tx.First(&parent, *newParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if strings.HasPrefix(parent.Path, cat.Path) {
			return ErrCategoryCycle
		}
		newPath = fmt.Sprintf("%s%d/", parent.Path, cat.ID)
		newDepth = parent.Depth + 1
	}

	var subtree []models.Category
	if err := tx.Where("path LIKE ?", cat.Path+"%").Find(&subtree).Error; err != nil {
		return err
	}

	depthShift := newDepth - cat.Depth
	for i := range subtree {
		node := &subtree[i]
		rewritten := newPath + strings.TrimPrefix(node.Path, cat.Path)
		updates := map[string]interface{}{
			"path":  rewritten,
			"depth": node.Depth + depthShift,
		}
		if node.ID == cat.ID {
			updates["parent_id"] = newParentID
		}
		if err := tx.Model(node).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the category and every descendant. Records filed under any
// deleted category keep their other fields and get the category reference
// cleared.
func (s *CategoryService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var ids []uint
		if err := tx.Model(&models.Category{}).
			Where("path LIKE ?", cat.Path+"%").
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Record{}).
			Where("category_id IN ?", ids).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, ids).Error
	})
}

// Node is a category with its resolved children, for tree rendering.
type Node struct {
	models.Category
	Children []*Node `json:"children"`
}

// Tree loads the whole forest (or one owner's slice of it) nested, roots and
// siblings ordered by name.
func (s *CategoryService) Tree(ownerID *uint) ([]*Node, error) {
	q := s.db.Order("depth, name")
	if ownerID != nil {
		q = q.Where("owner_id = ? OR owner_id IS NULL", *ownerID)
	}

	var cats []models.Category
	if err := q.Find(&cats).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*Node, len(cats))
	var roots []*Node
	for i := range cats {
		byID[cats[i].ID] = &Node{Category: cats[i], Children: []*Node{}}
	}
	for _, n := range byID {
		if n.ParentID != nil {
			if parent, ok := byID[*n.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	sortNodes(roots)
	for _, n := range byID {
		sortNodes(n.Children)
	}
	return roots, nil
}

func sortNodes(nodes []*Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j].Name < nodes[j-1].Name; j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
}
