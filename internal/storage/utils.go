package storage

import (
	"fmt"
	"mime"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	reportPrefix     = "FeasibilityReport"
	reportTimeLayout = "2006-01-02-15-04-05"
	// ReportIndex is the entry page of every stored report
	ReportIndex = "index.html"
)

var reportFolderPattern = regexp.MustCompile(`(?:^|/)` + reportPrefix + `-([a-z]+)-(\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})$`)

// GenerateReportFolderPath generates a consistent folder path for reports
// Format: YYYY/MM/DD/FeasibilityReport-<technology>-YYYY-MM-DD-HH-MM-SS
func GenerateReportFolderPath(technology string, timestamp time.Time) string {
	timestamp = timestamp.UTC()
	return fmt.Sprintf("%s/%s-%s-%s",
		timestamp.Format("2006/01/02"), reportPrefix, technology, timestamp.Format(reportTimeLayout))
}

// ReportInfo describes one stored report
type ReportInfo struct {
	Folder     string    `json:"folder"`
	IndexPath  string    `json:"indexPath"`
	Technology string    `json:"technology"`
	Created    time.Time `json:"created"`
}

// ParseReportFolder recovers technology and timestamp from a report folder path
func ParseReportFolder(folder string) (ReportInfo, bool) {
	folder = strings.Trim(folder, "/")
	m := reportFolderPattern.FindStringSubmatch(folder)
	if m == nil {
		return ReportInfo{}, false
	}
	created, err := time.ParseInLocation(reportTimeLayout, m[2], time.UTC)
	if err != nil {
		return ReportInfo{}, false
	}
	return ReportInfo{
		Folder:     folder,
		IndexPath:  path.Join(folder, ReportIndex),
		Technology: m[1],
		Created:    created,
	}, true
}

// reportsFromIndexPaths turns index.html paths into ReportInfos, newest first
func reportsFromIndexPaths(paths []string, limit int) []ReportInfo {
	var reports []ReportInfo
	for _, p := range paths {
		if path.Base(p) != ReportIndex {
			continue
		}
		if info, ok := ParseReportFolder(path.Dir(p)); ok {
			reports = append(reports, info)
		}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Created.Equal(reports[j].Created) {
			return reports[i].Folder > reports[j].Folder
		}
		return reports[i].Created.After(reports[j].Created)
	})

	if limit > 0 && limit < len(reports) {
		reports = reports[:limit]
	}
	return reports
}

// CleanPath normalises a storage key and rejects anything escaping the root
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	return cleaned, nil
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".yaml", ".yml":
		return "application/yaml"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
