package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nodio/models"
)

// ==================== FOLDERS ====================

const folderColumns = "id, name, parent_id, color, icon, created_at, updated_at"

func scanFolder(scan func(...any) error) (folderRow, error) {
	var r folderRow
	err := scan(&r.ID, &r.Name, &r.ParentID, &r.Color, &r.Icon, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *Repository) GetFolders() ([]models.Folder, error) {
	rows, err := r.db.Query(`SELECT ` + folderColumns + ` FROM folders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get folders: %w", err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		row, err := scanFolder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("get folders: %w", err)
		}
		folders = append(folders, row.toModel())
	}
	return folders, rows.Err()
}

func (r *Repository) GetFolderByID(id string) (*models.Folder, error) {
	row, err := scanFolder(r.db.QueryRow(
		`SELECT `+folderColumns+` FROM folders WHERE id = ?`, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get folder %s: %w", id, err)
	}
	folder := row.toModel()
	return &folder, nil
}

// GetFoldersByParent returns immediate children only.
func (r *Repository) GetFoldersByParent(parentID string) ([]models.Folder, error) {
	rows, err := r.db.Query(
		`SELECT `+folderColumns+` FROM folders WHERE parent_id = ? ORDER BY name`, parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("get folders under %s: %w", parentID, err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		row, err := scanFolder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("get folders under %s: %w", parentID, err)
		}
		folders = append(folders, row.toModel())
	}
	return folders, rows.Err()
}

func (r *Repository) CreateFolder(folder *models.Folder) error {
	if folder.ParentID != nil && *folder.ParentID == folder.ID {
		return fmt.Errorf("create folder %s: %w", folder.ID, ErrFolderCycle)
	}

	row := folderToRow(*folder)
	_, err := r.db.Exec(`
		INSERT INTO folders (id, name, parent_id, color, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.Name, row.ParentID, row.Color, row.Icon, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create folder %s: %w", folder.ID, err)
	}
	return nil
}

// UpdateFolder patches the supplied fields over the current row and
// refreshes updated_at. The sentinel root folder is rejected before any
// store operation.
func (r *Repository) UpdateFolder(id string, update models.FolderUpdate) error {
	if id == models.RootFolderID {
		return fmt.Errorf("update folder %s: %w", id, ErrRootFolderImmutable)
	}

	current, err := r.GetFolderByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("update folder %s: %w", id, ErrNotFound)
	}

	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.ParentID != nil {
		if err := r.checkFolderCycle(id, *update.ParentID); err != nil {
			return err
		}
		current.ParentID = update.ParentID
	}
	if update.Color != nil {
		current.Color = *update.Color
	}
	if update.Icon != nil {
		current.Icon = *update.Icon
	}
	current.UpdatedAt = time.Now()

	row := folderToRow(*current)
	_, err = r.db.Exec(`
		UPDATE folders SET name = ?, parent_id = ?, color = ?, icon = ?, updated_at = ?
		WHERE id = ?
	`, row.Name, row.ParentID, row.Color, row.Icon, row.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("update folder %s: %w", id, err)
	}
	return nil
}

// checkFolderCycle rejects a reparent that would make id its own ancestor.
// The store cannot forbid cycles on its own.
func (r *Repository) checkFolderCycle(id, newParentID string) error {
	currentID := newParentID
	for currentID != "" {
		if currentID == id {
			return fmt.Errorf("move folder %s under %s: %w", id, newParentID, ErrFolderCycle)
		}
		parent, err := r.GetFolderByID(currentID)
		if err != nil {
			return err
		}
		if parent == nil || parent.ParentID == nil {
			return nil
		}
		currentID = *parent.ParentID
	}
	return nil
}

// DeleteFolder removes the folder and every descendant folder in one pass.
// The caller chooses what happens to projects owned by the doomed subtree;
// there is no default disposition.
func (r *Repository) DeleteFolder(id string, disposition models.ProjectDisposition) error {
	if id == models.RootFolderID {
		return fmt.Errorf("delete folder %s: %w", id, ErrRootFolderImmutable)
	}

	folder, err := r.GetFolderByID(id)
	if err != nil {
		return err
	}
	if folder == nil {
		return fmt.Errorf("delete folder %s: %w", id, ErrNotFound)
	}

	ids, err := r.collectDescendantFolderIDs(id)
	if err != nil {
		return err
	}

	return r.db.WithTx(func(tx *sql.Tx) error {
		in := placeholders(len(ids))
		args := make([]any, len(ids))
		for i, folderID := range ids {
			args[i] = folderID
		}

		switch disposition {
		case models.ReassignProjects:
			if _, err := tx.Exec(
				`UPDATE projects SET folder_id = NULL, updated_at = ? WHERE folder_id IN (`+in+`)`,
				append([]any{nowMillis()}, args...)...,
			); err != nil {
				return fmt.Errorf("reassign projects from folder %s: %w", id, err)
			}
		case models.DeleteProjects:
			if _, err := tx.Exec(
				`DELETE FROM projects WHERE folder_id IN (`+in+`)`, args...,
			); err != nil {
				return fmt.Errorf("delete projects in folder %s: %w", id, err)
			}
		default:
			return fmt.Errorf("delete folder %s: unknown project disposition %q", id, disposition)
		}

		if _, err := tx.Exec(`DELETE FROM folders WHERE id IN (`+in+`)`, args...); err != nil {
			return fmt.Errorf("delete folder %s: %w", id, err)
		}
		return nil
	})
}

// collectDescendantFolderIDs walks the parent-child relation breadth-first
// starting at id, returning id plus every descendant folder id.
func (r *Repository) collectDescendantFolderIDs(id string) ([]string, error) {
	ids := []string{id}
	queue := []string{id}

	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]

		children, err := r.GetFoldersByParent(parentID)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids, nil
}

// GetFolderPath reconstructs the root-to-folder ancestor chain. A missing
// intermediate folder terminates the walk early with a partial path rather
// than failing the call.
func (r *Repository) GetFolderPath(id string) ([]models.Folder, error) {
	var path []models.Folder
	currentID := id

	for currentID != "" {
		folder, err := r.GetFolderByID(currentID)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			break
		}
		path = append(path, *folder)
		if folder.ParentID == nil {
			break
		}
		currentID = *folder.ParentID
	}

	// Built node-outward; reverse to root-first
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
