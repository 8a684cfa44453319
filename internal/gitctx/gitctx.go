// Package gitctx resolves local git repository coordinates so the generator
// can stamp the manifest's repository element without shelling out.
package gitctx

import (
	git "github.com/go-git/go-git/v5"
)

// RepoInfo is a minimal view of the repository the package is built from.
type RepoInfo struct {
	URL    string `json:"url,omitempty"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// Collect gathers repository info for the repo at target path. Returns nil
// if target is not inside a git repository; that is not an error, the
// repository element is simply omitted.
func Collect(target string) (*RepoInfo, error) {
	repo, err := git.PlainOpenWithOptions(target, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, nil
	}

	info := &RepoInfo{}

	if head, err := repo.Head(); err == nil {
		info.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		}
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.URL = urls[0]
		}
	}

	if info.URL == "" && info.Commit == "" {
		return nil, nil
	}
	return info, nil
}
