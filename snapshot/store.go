package snapshot

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/ferrumdb/ferrum/core"
	"github.com/ferrumdb/ferrum/ps"
)

// Snapshot identifies one captured catalog state.
type Snapshot struct {
	Id      string
	When    time.Time
	Author  core.Identity
	Message string
}

// Store commits catalog states into an in-memory git repository.
type Store struct {
	repo *git.Repository
}

func NewStore() (*Store, error) {
	repo, err := git.Init(memory.NewStorage(), git.WithWorkTree(memfs.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to init snapshot repository: %w", err)
	}
	return &Store{repo: repo}, nil
}

type databaseState struct {
	Name string `json:"name"`
}

type indexState struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

type tableState struct {
	Name    string        `json:"name"`
	Columns []core.Column `json:"columns"`
	Indexes []indexState  `json:"indexes"`
}

// Capture serializes the whole catalog and commits it on top of the
// current history.
func (store *Store) Capture(catalog *ps.Catalog, identity core.Identity, message string) (Snapshot, error) {
	treeHash := plumbing.ZeroHash

	for _, databaseName := range catalog.ListDatabases() {
		database, err := catalog.Database(databaseName)
		if err != nil {
			return Snapshot{}, err
		}

		marker, err := json.Marshal(databaseState{Name: databaseName})
		if err != nil {
			return Snapshot{}, err
		}
		treeHash, err = store.writePath(treeHash, databaseName+".database", marker)
		if err != nil {
			return Snapshot{}, err
		}

		for _, tableName := range database.ListTables() {
			table, err := database.Table(tableName)
			if err != nil {
				return Snapshot{}, err
			}

			treeHash, err = store.writeTable(treeHash, databaseName, table)
			if err != nil {
				return Snapshot{}, err
			}
		}
	}

	return store.commit(treeHash, identity, message)
}

func (store *Store) writeTable(treeHash plumbing.Hash, databaseName string, table *ps.Table) (plumbing.Hash, error) {
	state := tableState{Name: table.Name, Columns: table.Columns}
	for _, indexName := range table.ListIndexes() {
		index, _ := table.Index(indexName)
		state.Indexes = append(state.Indexes, indexState{
			Name:    index.Name,
			Columns: index.Columns,
			Unique:  index.Unique,
		})
	}

	schema, err := json.Marshal(state)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	treeHash, err = store.writePath(treeHash, path.Join(databaseName, table.Name+".table"), schema)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	rows, err := json.Marshal(table.Rows())
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return store.writePath(treeHash, path.Join(databaseName, table.Name, "rows"), rows)
}

// Restore rebuilds a fresh catalog from the named snapshot. RowIDs and
// insertion order come back exactly as captured.
func (store *Store) Restore(id string) (*ps.Catalog, error) {
	commit, err := store.repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s not found: %w", id, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot tree: %w", err)
	}

	databases := make(map[string]bool)
	schemas := make(map[string]map[string]tableState) // database -> table -> schema
	rowData := make(map[string]map[string][]core.Row)

	err = tree.Files().ForEach(func(file *object.File) error {
		contents, err := file.Contents()
		if err != nil {
			return err
		}

		switch {
		case strings.HasSuffix(file.Name, ".database"):
			var state databaseState
			if err := json.Unmarshal([]byte(contents), &state); err != nil {
				return err
			}
			databases[state.Name] = true

		case strings.HasSuffix(file.Name, ".table"):
			databaseName := path.Dir(file.Name)
			var state tableState
			if err := json.Unmarshal([]byte(contents), &state); err != nil {
				return err
			}
			if schemas[databaseName] == nil {
				schemas[databaseName] = make(map[string]tableState)
			}
			schemas[databaseName][state.Name] = state

		case path.Base(file.Name) == "rows":
			tableDir := path.Dir(file.Name)
			databaseName := path.Dir(tableDir)
			tableName := path.Base(tableDir)

			var rows []core.Row
			if err := json.Unmarshal([]byte(contents), &rows); err != nil {
				return err
			}
			if rowData[databaseName] == nil {
				rowData[databaseName] = make(map[string][]core.Row)
			}
			rowData[databaseName][tableName] = rows
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk snapshot tree: %w", err)
	}

	catalog := ps.NewCatalog()
	for databaseName := range databases {
		database, err := catalog.CreateDatabase(databaseName)
		if err != nil {
			return nil, err
		}

		for tableName, state := range schemas[databaseName] {
			table, err := database.CreateTable(tableName, state.Columns)
			if err != nil {
				return nil, err
			}

			for _, row := range rowData[databaseName][tableName] {
				if err := table.InsertRow(row); err != nil {
					return nil, err
				}
			}

			for _, index := range state.Indexes {
				if _, err := table.CreateIndex(index.Name, index.Columns, index.Unique); err != nil {
					return nil, err
				}
			}
		}
	}

	return catalog, nil
}

// Latest returns the most recent snapshot, or false when nothing has
// been captured yet.
func (store *Store) Latest() (Snapshot, bool) {
	history, err := store.History()
	if err != nil || len(history) == 0 {
		return Snapshot{}, false
	}
	return history[0], true
}

// History returns all snapshots, newest first.
func (store *Store) History() ([]Snapshot, error) {
	headRef, err := store.repo.Head()
	if err != nil {
		return nil, nil // no commits yet
	}

	iter, err := store.repo.Log(&git.LogOptions{From: headRef.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var history []Snapshot
	err = iter.ForEach(func(commit *object.Commit) error {
		history = append(history, Snapshot{
			Id:      commit.Hash.String(),
			When:    commit.Author.When,
			Author:  core.Identity{Name: commit.Author.Name, Email: commit.Author.Email},
			Message: commit.Message,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// writePath stores the data as a blob and hangs it at the given path,
// returning the new root tree hash.
func (store *Store) writePath(treeHash plumbing.Hash, filePath string, data []byte) (plumbing.Hash, error) {
	blobHash, err := store.createBlob(data)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return store.updateTreePath(treeHash, strings.Split(filePath, "/"), blobHash)
}

// createBlob creates a blob object directly in the object store without
// filesystem I/O.
func (store *Store) createBlob(data []byte) (plumbing.Hash, error) {
	obj := store.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create blob writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("failed to write blob data: %w", err)
	}
	writer.Close()

	hash, err := store.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store blob: %w", err)
	}
	return hash, nil
}

func (store *Store) treeEntries(treeHash plumbing.Hash) (map[string]object.TreeEntry, error) {
	entries := make(map[string]object.TreeEntry)
	if treeHash == plumbing.ZeroHash {
		return entries, nil
	}

	tree, err := object.GetTree(store.repo.Storer, treeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree: %w", err)
	}
	for _, entry := range tree.Entries {
		entries[entry.Name] = entry
	}
	return entries, nil
}

func (store *Store) updateTreePath(treeHash plumbing.Hash, pathParts []string, blobHash plumbing.Hash) (plumbing.Hash, error) {
	if len(pathParts) == 0 {
		return plumbing.ZeroHash, fmt.Errorf("empty path")
	}

	entries, err := store.treeEntries(treeHash)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	name := pathParts[0]
	if len(pathParts) == 1 {
		entries[name] = object.TreeEntry{
			Name: name,
			Mode: filemode.Regular,
			Hash: blobHash,
		}
	} else {
		subTreeHash := plumbing.ZeroHash
		if existing, ok := entries[name]; ok && existing.Mode == filemode.Dir {
			subTreeHash = existing.Hash
		}

		newSubTreeHash, err := store.updateTreePath(subTreeHash, pathParts[1:], blobHash)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		entries[name] = object.TreeEntry{
			Name: name,
			Mode: filemode.Dir,
			Hash: newSubTreeHash,
		}
	}

	return store.buildTree(entries)
}

// buildTree encodes a tree object with entries in git's sort order.
func (store *Store) buildTree(entryMap map[string]object.TreeEntry) (plumbing.Hash, error) {
	entries := make([]object.TreeEntry, 0, len(entryMap))
	for _, entry := range entryMap {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		nameI := entries[i].Name
		nameJ := entries[j].Name
		if entries[i].Mode == filemode.Dir {
			nameI += "/"
		}
		if entries[j].Mode == filemode.Dir {
			nameJ += "/"
		}
		return nameI < nameJ
	})

	tree := &object.Tree{Entries: entries}
	obj := store.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode tree: %w", err)
	}

	hash, err := store.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store tree: %w", err)
	}
	return hash, nil
}

// commit creates a commit object on top of HEAD without a worktree.
func (store *Store) commit(treeHash plumbing.Hash, identity core.Identity, message string) (Snapshot, error) {
	if treeHash == plumbing.ZeroHash {
		var err error
		treeHash, err = store.buildTree(nil)
		if err != nil {
			return Snapshot{}, err
		}
	}

	var parentHashes []plumbing.Hash
	headRef, err := store.repo.Head()
	if err == nil {
		parentHashes = []plumbing.Hash{headRef.Hash()}
	}

	sig := object.Signature{
		Name:  identity.Name,
		Email: identity.Email,
		When:  time.Now(),
	}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parentHashes,
	}

	obj := store.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode commit: %w", err)
	}
	commitHash, err := store.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to store commit: %w", err)
	}

	branchName := plumbing.Master
	if headRef != nil && headRef.Name().IsBranch() {
		branchName = headRef.Name()
	}
	ref := plumbing.NewHashReference(branchName, commitHash)
	if err := store.repo.Storer.SetReference(ref); err != nil {
		return Snapshot{}, fmt.Errorf("failed to update HEAD: %w", err)
	}

	return Snapshot{
		Id:      commitHash.String(),
		When:    sig.When,
		Author:  identity,
		Message: message,
	}, nil
}
