package engine

// CreateFile implements spec.md's explicit file create.
func (e *Engine) CreateFile(notebookID, folderPath, fileName string) (string, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return "", err
	}
	id, cErr := nb.Folders.CreateFile(folderPath, fileName)
	return id, wrap(cErr)
}

// ImportFile implements spec.md's explicit file import (copy from an
// external absolute path, auto-renaming on collision per §4.4.3).
func (e *Engine) ImportFile(notebookID, srcAbsPath, destFolderPath, destName string) (string, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return "", err
	}
	id, iErr := nb.Folders.ImportFile(srcAbsPath, destFolderPath, destName)
	return id, wrap(iErr)
}

// UpdateFileTags implements spec.md's explicit file update_tags (replace).
func (e *Engine) UpdateFileTags(notebookID, filePath string, fileTags []string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	return wrap(nb.Folders.UpdateFileTags(filePath, fileTags))
}

// TagFile implements spec.md's explicit file tag (add one).
func (e *Engine) TagFile(notebookID, filePath, tag string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	return wrap(nb.Folders.AddTagToFile(filePath, tag))
}

// UntagFile implements spec.md's explicit file untag (remove one).
func (e *Engine) UntagFile(notebookID, filePath, tag string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	return wrap(nb.Folders.RemoveTagFromFile(filePath, tag))
}
