package collect

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/smy-101/gmarket/internal/types"
)

// commitPageSize caps the history lookup at one API page. A package with
// more than 100 qualifying commits reports the oldest commit of that page
// as its creation date — a known precision limit.
const commitPageSize = 100

// FetchCommitDates derives creation and last-update timestamps for a package
// from the commit history of its directory. The endpoint returns commits
// newest first: the first entry dates the latest update, the last entry of
// the page dates the creation. An empty history yields zero-value dates and
// no error; a fetch or decode failure yields zero-value dates plus the
// cause, which the collector logs and otherwise ignores.
func (c *Client) FetchCommitDates(ctx context.Context, pkg string) (types.CommitDates, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits", c.apiBase, c.owner, c.repo)

	var commits []types.GitHubCommit
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetQueryParam("path", fmt.Sprintf("%s/%s", packagesRoot, pkg)).
		SetQueryParam("per_page", strconv.Itoa(commitPageSize)).
		SetResult(&commits).
		Get(url)

	if err != nil {
		return types.CommitDates{}, &CollectError{
			Type:    ErrorTypeHistory,
			Package: pkg,
			Message: "commit history request failed",
			Err:     err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return types.CommitDates{}, &CollectError{
			Type:    ErrorTypeHistory,
			Package: pkg,
			Message: fmt.Sprintf("commit history returned %d", resp.StatusCode()),
		}
	}

	if len(commits) == 0 {
		return types.CommitDates{}, nil
	}

	return types.CommitDates{
		CreatedAt:   commits[len(commits)-1].Commit.Committer.Date,
		LastUpdated: commits[0].Commit.Committer.Date,
	}, nil
}
