//go:build cgo

package embeddings

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultONNXRuntimeVersion tracks the onnxruntime_go dependency in
// go.mod; bump them together.
const DefaultONNXRuntimeVersion = "1.23.0"

// ErrUnsupportedPlatform indicates the current OS/arch has no upstream
// ONNX runtime release.
var ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")

const onnxReleaseURLTemplate = "https://github.com/microsoft/onnxruntime/releases/download/v%s/onnxruntime-%s-%s.tgz"

// getPlatformArchive returns the upstream release slug for an OS/arch
// pair, e.g. "linux-x64".
func getPlatformArchive(goos, goarch string) (string, error) {
	switch goos + "/" + goarch {
	case "linux/amd64":
		return "linux-x64", nil
	case "linux/arm64":
		return "linux-aarch64", nil
	case "darwin/amd64":
		return "osx-x86_64", nil
	case "darwin/arm64":
		return "osx-arm64", nil
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
	}
}

// getLibraryName returns the shared library filename for an OS.
func getLibraryName(goos string) string {
	if goos == "darwin" {
		return "libonnxruntime.dylib"
	}
	return "libonnxruntime.so"
}

func buildDownloadURL(version, platform string) string {
	return fmt.Sprintf(onnxReleaseURLTemplate, version, platform, version)
}

// installDir is where consultd keeps its managed runtime copy.
func installDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "consultd", "lib")
}

// GetONNXLibraryPath returns the runtime library path, preferring an
// ONNX_PATH override, then the managed install under
// ~/.config/consultd/lib/. Empty when neither exists.
func GetONNXLibraryPath() string {
	if envPath := os.Getenv("ONNX_PATH"); envPath != "" {
		return envPath
	}

	managed := filepath.Join(installDir(), getLibraryName(runtime.GOOS))
	if _, err := os.Stat(managed); err == nil {
		return managed
	}
	return ""
}

// ONNXRuntimeExists reports whether a runtime library is available.
func ONNXRuntimeExists() bool {
	return GetONNXLibraryPath() != ""
}

// DownloadONNXRuntime fetches the release archive for the current
// platform and installs its lib/ contents into the managed directory.
// An empty version selects DefaultONNXRuntimeVersion.
func DownloadONNXRuntime(ctx context.Context, version string) error {
	if version == "" {
		version = DefaultONNXRuntimeVersion
	}

	platform, err := getPlatformArchive(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	destDir := installDir()
	if err := os.MkdirAll(destDir, 0700); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	body, err := fetchArchive(ctx, buildDownloadURL(version, platform))
	if err != nil {
		return err
	}
	defer body.Close()

	if err := installFromArchive(body, destDir, version, platform); err != nil {
		return fmt.Errorf("extracting archive: %w", err)
	}
	return nil
}

func fetchArchive(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading ONNX runtime: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// installFromArchive streams the release tarball, placing every entry
// under onnxruntime-<platform>-<version>/lib/ flat into destDir. The
// archive ships the library behind versioned symlinks, so both regular
// files and links are carried over. Fails if the main library never
// appears.
func installFromArchive(r io.Reader, destDir, version, platform string) error {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gzr.Close()

	libDir := fmt.Sprintf("onnxruntime-%s-%s/lib/", platform, version)
	libName := getLibraryName(runtime.GOOS)

	tr := tar.NewReader(gzr)
	var found bool
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar: %w", err)
		}

		name := strings.TrimPrefix(header.Name, "./")
		if !strings.HasPrefix(name, libDir) || header.Typeflag == tar.TypeDir {
			continue
		}

		filename := filepath.Base(name)
		if err := placeEntry(tr, header, filepath.Join(destDir, filename)); err != nil {
			return err
		}
		if isRuntimeLib(filename, libName) {
			found = true
		}
	}

	if !found {
		return fmt.Errorf("library %s not found in archive", libName)
	}
	return nil
}

// placeEntry writes one archive entry to destPath. A symlink that cannot
// be created is skipped; the versioned regular file it points at still
// gets extracted.
func placeEntry(tr *tar.Reader, header *tar.Header, destPath string) error {
	if header.Typeflag == tar.TypeSymlink {
		os.Remove(destPath)
		_ = os.Symlink(header.Linkname, destPath)
		return nil
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", filepath.Base(destPath), err)
	}
	defer out.Close()

	if _, err := io.Copy(out, tr); err != nil {
		return fmt.Errorf("writing file %s: %w", filepath.Base(destPath), err)
	}
	return nil
}

// isRuntimeLib matches the library itself or a versioned variant like
// libonnxruntime.so.1.23.0.
func isRuntimeLib(filename, libName string) bool {
	return filename == libName || strings.HasPrefix(filename, libName+".")
}

// EnsureONNXRuntime returns the library path, downloading the runtime
// first when no copy is installed.
func EnsureONNXRuntime(ctx context.Context) (string, error) {
	if path := GetONNXLibraryPath(); path != "" {
		return path, nil
	}

	fmt.Printf("ONNX runtime not found. Downloading v%s for %s/%s...\n",
		DefaultONNXRuntimeVersion, runtime.GOOS, runtime.GOARCH)

	if err := DownloadONNXRuntime(ctx, ""); err != nil {
		return "", fmt.Errorf("failed to download ONNX runtime: %w\nRun 'consultctl init' to install manually, or set ONNX_PATH", err)
	}

	path := GetONNXLibraryPath()
	if path == "" {
		return "", fmt.Errorf("ONNX runtime download completed but library not found")
	}

	fmt.Printf("Downloaded to %s\n", path)
	return path, nil
}
