package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Masterminds/semver"
	"github.com/pterm/pterm"
)

const devVersion = "0.0.0-dev"

// ReleasesURL é o endpoint consultado por CheckLatestVersion.
var ReleasesURL = "https://api.github.com/repos/diillson/aws-cost-chart/releases/latest"

// Preenchidos por ldflags; quando ausentes, pela build info do binário.
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(bi)
	}
}

// applyBuildInfo completa os campos vazios a partir das settings vcs.*.
// Uma versão vinda de ldflags nunca é sobrescrita.
func applyBuildInfo(bi *debug.BuildInfo) {
	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); BuildTime == "" && err == nil {
		BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
	}

	if Version != devVersion && Version != "" {
		return
	}
	if tag := strings.TrimPrefix(settings["vcs.tag"], "v"); tag != "" {
		Version = tag
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// runningInLambda reports whether the process is a Lambda function instance.
func runningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// CheckLatestVersion avisa no terminal quando há uma release mais nova.
// Builds de desenvolvimento e execuções no Lambda não consultam a rede.
func CheckLatestVersion(ctx context.Context, currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") || runningInLambda() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	latest, err := latestRelease(ctx, http.DefaultClient, ReleasesURL)
	if err != nil || !isNewer(latest, currentVersion) {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of AWS Cost Chart is available: %s", latest))
	pterm.Info.Println("Please update using: go install github.com/diillson/aws-cost-chart/cmd/aws-cost-chart@latest")
}

// latestRelease retorna a tag da última release, sem o prefixo "v".
func latestRelease(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup returned %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decoding release: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release without tag")
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// isNewer compara as versões como semver; entradas inválidas nunca são mais novas.
func isNewer(latest, current string) bool {
	l, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	c, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	return l.GreaterThan(c)
}

// FormatVersion retorna a versão com commit e horário do build.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
}
