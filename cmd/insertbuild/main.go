// insertbuild registers a build in the database and copies its
// artifacts into the storage tree. It writes straight to the store;
// the HTTP service itself stays read-only.
//
// Usage:
//
//	insertbuild --project paper --project-friendly-name Paper \
//	    --version-group 1.20 --version 1.20.1 --build -1 \
//	    --channel default --storage ./storage \
//	    --download application:./paper-1.20.1.jar \
//	    --change abc123:"Fix chunk loading":"Full commit message"
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/HttpRafa/Bibliothek/internal/config"
	"github.com/HttpRafa/Bibliothek/internal/database"
	"github.com/HttpRafa/Bibliothek/internal/models"
	"github.com/HttpRafa/Bibliothek/internal/storage"
	"github.com/HttpRafa/Bibliothek/internal/validation"
)

type options struct {
	project      string
	friendlyName string
	group        string
	version      string
	build        int
	channel      string
	storagePath  string
	downloads    []string
	changes      []string
}

func main() {
	var opts options
	pflag.StringVarP(&opts.project, "project", "p", "", "project name, e.g. paper")
	pflag.StringVarP(&opts.friendlyName, "project-friendly-name", "n", "", "display name, e.g. Paper")
	pflag.StringVarP(&opts.group, "version-group", "g", "", "version group, e.g. 1.20 (optional)")
	pflag.StringVarP(&opts.version, "version", "v", "", "version name, e.g. 1.20.1")
	pflag.IntVarP(&opts.build, "build", "b", -1, "build number, -1 for auto")
	pflag.StringVarP(&opts.channel, "channel", "c", "default", "build channel: default or experimental")
	pflag.StringVarP(&opts.storagePath, "storage", "s", "", "storage root artifacts are copied into")
	pflag.StringArrayVarP(&opts.downloads, "download", "d", nil, "download as TYPE:PATH[:SHA256[:NAME]], repeatable")
	pflag.StringArrayVar(&opts.changes, "change", nil, "change as COMMIT:SUMMARY:MESSAGE, repeatable")
	pflag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run(opts options) error {
	if err := checkOptions(&opts); err != nil {
		return err
	}

	if err := config.Load(); err != nil {
		return err
	}
	store, err := database.Connect(config.Current.DatabaseURL)
	if err != nil {
		return err
	}
	if err := store.AutoMigrate(); err != nil {
		return err
	}

	ctx := context.Background()
	now := time.Now()

	project, err := ensureProject(ctx, store, opts)
	if err != nil {
		return err
	}
	version, err := ensureVersion(ctx, store, project, opts, now)
	if err != nil {
		return err
	}

	number, err := buildNumber(ctx, store, project, version, opts.build)
	if err != nil {
		return err
	}

	channel, err := models.ParseChannel(opts.channel)
	if err != nil {
		return err
	}
	displayMode := models.DisplayPromote
	if channel == models.ChannelExperimental {
		displayMode = models.DisplayHide
	}

	downloads, err := copyDownloads(opts, project.Name, version.Name, number)
	if err != nil {
		return err
	}
	changes, err := parseChanges(opts.changes)
	if err != nil {
		return err
	}

	build := &models.Build{
		ProjectID:   project.ID,
		VersionID:   version.ID,
		Number:      number,
		Timestamp:   now,
		Channel:     channel,
		DisplayMode: displayMode,
		Changes:     changes,
		Downloads:   downloads,
	}
	if err := store.CreateBuild(ctx, build); err != nil {
		return err
	}

	log.Printf("[INFO] inserted build %d for %s %s (%d downloads)", number, project.Name, version.Name, len(downloads))
	return nil
}

func checkOptions(opts *options) error {
	if !validation.ProjectName(opts.project) {
		return errors.Errorf("invalid project name %q", opts.project)
	}
	if !validation.VersionName(opts.version) {
		return errors.Errorf("invalid version name %q", opts.version)
	}
	if opts.friendlyName == "" {
		opts.friendlyName = strings.ToUpper(opts.project[:1]) + opts.project[1:]
	}
	if opts.storagePath == "" {
		return errors.New("--storage is required")
	}
	if len(opts.downloads) == 0 {
		return errors.New("at least one --download is required")
	}
	return nil
}

func ensureProject(ctx context.Context, store database.WriteStore, opts options) (*models.Project, error) {
	project, err := store.ProjectByName(ctx, opts.project)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	project = &models.Project{Name: opts.project, FriendlyName: opts.friendlyName}
	if err := store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	log.Printf("[INFO] created project %s", project.Name)
	return project, nil
}

func ensureVersion(ctx context.Context, store database.WriteStore, project *models.Project, opts options, now time.Time) (*models.Version, error) {
	var groupID *uint
	if opts.group != "" {
		group, err := store.GroupByProjectAndName(ctx, project.ID, opts.group)
		if errors.Is(err, database.ErrNotFound) {
			group = &models.Group{ProjectID: project.ID, Name: opts.group, Timestamp: now}
			if err := store.CreateGroup(ctx, group); err != nil {
				return nil, err
			}
			log.Printf("[INFO] created group %s", group.Name)
		} else if err != nil {
			return nil, err
		}
		groupID = &group.ID
	}

	version, err := store.VersionByProjectAndName(ctx, project.ID, opts.version)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	version = &models.Version{ProjectID: project.ID, GroupID: groupID, Name: opts.version, Timestamp: now}
	if err := store.CreateVersion(ctx, version); err != nil {
		return nil, err
	}
	log.Printf("[INFO] created version %s", version.Name)
	return version, nil
}

func buildNumber(ctx context.Context, store database.Store, project *models.Project, version *models.Version, requested int) (int, error) {
	builds, err := store.BuildsByProjectAndVersion(ctx, project.ID, version.ID)
	if err != nil {
		return 0, err
	}
	if requested < 0 {
		if len(builds) == 0 {
			return 1, nil
		}
		return builds[len(builds)-1].Number + 1, nil
	}
	for _, build := range builds {
		if build.Number == requested {
			return 0, errors.Errorf("build %d already exists for %s %s", requested, project.Name, version.Name)
		}
	}
	return requested, nil
}

// copyDownloads parses every --download flag, copies the file into
// the storage tree under the build's directory, and returns the
// role-key -> download mapping. The sha256 is computed while copying
// when the flag does not carry one.
func copyDownloads(opts options, project, version string, number int) (models.DownloadMap, error) {
	downloads := models.DownloadMap{}
	for _, flag := range opts.downloads {
		parts := strings.SplitN(flag, ":", 4)
		if len(parts) < 2 {
			return nil, errors.Errorf("invalid download %q, want TYPE:PATH[:SHA256[:NAME]]", flag)
		}
		role := parts[0]
		source := parts[1]
		declaredSum := ""
		if len(parts) > 2 {
			declaredSum = parts[2]
		}
		name := filepath.Base(source)
		if len(parts) > 3 && parts[3] != "" {
			name = parts[3]
		}
		if !validation.DownloadName(name) {
			return nil, errors.Errorf("invalid download name %q", name)
		}
		if _, exists := downloads[role]; exists {
			return nil, errors.Errorf("duplicate download type %q", role)
		}

		target, err := storage.ArtifactPath(opts.storagePath, project, version, number, name)
		if err != nil {
			return nil, err
		}
		sum, err := copyWithSum(source, target)
		if err != nil {
			return nil, err
		}
		if declaredSum != "" && !strings.EqualFold(declaredSum, sum) {
			return nil, errors.Errorf("sha256 mismatch for %q: declared %s, file is %s", source, declaredSum, sum)
		}

		downloads[role] = models.Download{Name: name, SHA256: sum}
		log.Printf("[INFO] stored %s as %s (%s)", source, target, sum)
	}
	return downloads, nil
}

func copyWithSum(source, target string) (string, error) {
	in, err := os.Open(source)
	if err != nil {
		return "", err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func parseChanges(flags []string) (models.ChangeList, error) {
	changes := models.ChangeList{}
	for _, flag := range flags {
		parts := strings.SplitN(flag, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid change %q, want COMMIT:SUMMARY[:MESSAGE]", flag)
		}
		change := models.Change{Commit: parts[0], Summary: parts[1]}
		if len(parts) > 2 {
			change.Message = parts[2]
		} else {
			change.Message = parts[1]
		}
		changes = append(changes, change)
	}
	return changes, nil
}
