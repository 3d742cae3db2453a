package which_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/conda-which/pkg/errors"
	"github.com/arthur-debert/conda-which/pkg/registry"
	"github.com/arthur-debert/conda-which/pkg/testutil"
	"github.com/arthur-debert/conda-which/pkg/which"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	flaskPkg = "flask-1.0.0-pyhd8ed1ab_0"
	numpyPkg = "numpy-1.0.0-pyhd2dzjjafs"
)

type fixture struct {
	root      string
	normal    string
	clobbered string
	resolver  *which.Resolver
}

func setup(t *testing.T) fixture {
	t.Helper()
	root := testutil.TempDir(t)

	normal := testutil.CreateCondaEnv(t, filepath.Join(root, "environments", "normal"),
		testutil.Package{ID: flaskPkg, Files: []string{
			"bin/flask",
			"lib/python3.12/site-packages/flask/__init__.py",
		}},
	)
	testutil.CreateFile(t, normal, "user-added.txt", "mine\n")
	testutil.CreateSymlink(t,
		filepath.Join(normal, "lib", "python3.12", "site-packages", "flask", "__init__.py"),
		filepath.Join(normal, "lib", "python3.12", "site-packages", "symlink-to-init"))

	clobbered := testutil.CreateCondaEnv(t, filepath.Join(root, "environments", "clobbered"),
		testutil.Package{ID: flaskPkg, Files: []string{"bin/flask", "lib/clobbered"}},
		testutil.Package{ID: numpyPkg, Files: []string{"lib/clobbered"}},
	)

	reg := registry.New(normal, clobbered)
	return fixture{root: root, normal: normal, clobbered: clobbered, resolver: which.New(reg)}
}

func TestWhich_NormalEnvironment(t *testing.T) {
	f := setup(t)

	t.Run("owned file", func(t *testing.T) {
		path := filepath.Join(f.normal, "bin", "flask")
		res, err := f.resolver.Which(path)
		require.NoError(t, err)

		assert.Equal(t, path, res.Path)
		assert.Equal(t, f.normal, res.Prefix)
		assert.Equal(t, []string{flaskPkg}, res.Packages)
		assert.Equal(t, which.Owned, res.Kind)
	})

	t.Run("user added file", func(t *testing.T) {
		path := filepath.Join(f.normal, "user-added.txt")
		res, err := f.resolver.Which(path)
		require.NoError(t, err)

		assert.Equal(t, path, res.Path)
		assert.Equal(t, f.normal, res.Prefix)
		assert.Empty(t, res.Packages)
		assert.Equal(t, which.Unowned, res.Kind)
	})

	t.Run("nonexistent file", func(t *testing.T) {
		path := filepath.Join(f.normal, "nonexistent-file")
		res, err := f.resolver.Which(path)
		require.NoError(t, err)

		assert.Equal(t, path, res.Query)
		assert.Empty(t, res.Path)
		assert.Empty(t, res.Prefix)
		assert.Empty(t, res.Packages)
		assert.Equal(t, which.NotFound, res.Kind)
		assert.False(t, res.InEnvironment())
	})
}

func TestWhich_ClobberedEnvironment(t *testing.T) {
	f := setup(t)

	t.Run("clobbered file", func(t *testing.T) {
		path := filepath.Join(f.clobbered, "lib", "clobbered")
		res, err := f.resolver.Which(path)
		require.NoError(t, err)

		assert.Equal(t, path, res.Path)
		assert.Equal(t, f.clobbered, res.Prefix)
		assert.ElementsMatch(t, []string{flaskPkg, numpyPkg}, res.Packages)
		assert.Equal(t, which.Clobbered, res.Kind)
	})

	t.Run("single owner in clobbered env", func(t *testing.T) {
		res, err := f.resolver.Which(filepath.Join(f.clobbered, "bin", "flask"))
		require.NoError(t, err)
		assert.Equal(t, []string{flaskPkg}, res.Packages)
		assert.Equal(t, which.Owned, res.Kind)
	})
}

func TestWhich_Symlink(t *testing.T) {
	f := setup(t)

	link := filepath.Join(f.normal, "lib", "python3.12", "site-packages", "symlink-to-init")
	res, err := f.resolver.Which(link)
	require.NoError(t, err)

	assert.Equal(t, link, res.Query)
	assert.Equal(t, filepath.Join(f.normal, "lib", "python3.12", "site-packages", "flask", "__init__.py"), res.Path)
	assert.Equal(t, f.normal, res.Prefix)
	assert.Equal(t, []string{flaskPkg}, res.Packages)
}

func TestWhich_DotDotAfterSymlink(t *testing.T) {
	f := setup(t)

	// lnk points out of the environment; "lnk/.." is the target's parent
	deep := testutil.CreateDir(t, f.root, filepath.Join("other", "deep"))
	outside := testutil.CreateFile(t, f.root, filepath.Join("other", "bin", "flask"), "shadow\n")
	testutil.CreateSymlink(t, deep, filepath.Join(f.normal, "lnk"))

	res, err := f.resolver.Which(f.normal + "/lnk/../bin/flask")
	require.NoError(t, err)

	assert.Equal(t, outside, res.Path)
	assert.Empty(t, res.Prefix)
	assert.Empty(t, res.Packages)
	assert.Equal(t, which.Untracked, res.Kind)
}

func TestWhich_RelativePath(t *testing.T) {
	f := setup(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Join(f.normal, "lib")))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	res, err := f.resolver.Which(filepath.Join("..", "bin", "flask"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.normal, "bin", "flask"), res.Path)
	assert.Equal(t, which.Owned, res.Kind)
}

func TestWhich_Untracked(t *testing.T) {
	f := setup(t)
	path := testutil.CreateFile(t, f.root, "elsewhere.txt", "x")

	res, err := f.resolver.Which(path)
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Empty(t, res.Prefix)
	assert.Empty(t, res.Packages)
	assert.Equal(t, which.Untracked, res.Kind)
}

func TestWhich_MetadataFiles(t *testing.T) {
	f := setup(t)

	for _, name := range []string{"history", flaskPkg + ".json"} {
		t.Run(name, func(t *testing.T) {
			res, err := f.resolver.Which(filepath.Join(f.normal, "conda-meta", name))
			require.NoError(t, err)
			assert.Equal(t, f.normal, res.Prefix)
			assert.Empty(t, res.Packages)
			assert.Equal(t, which.Metadata, res.Kind)
		})
	}

	t.Run("other conda-meta file", func(t *testing.T) {
		path := testutil.CreateFile(t, f.normal, filepath.Join("conda-meta", "notes.txt"), "")
		res, err := f.resolver.Which(path)
		require.NoError(t, err)
		assert.Equal(t, which.Unowned, res.Kind)
	})
}

func TestWhich_NestedEnvironments(t *testing.T) {
	root := testutil.TempDir(t)
	outer := testutil.CreateCondaEnv(t, filepath.Join(root, "envs"),
		testutil.Package{ID: "outer-1.0-0", Files: []string{"conda/bin/tool"}})
	inner := testutil.CreateCondaEnv(t, filepath.Join(root, "envs", "conda"),
		testutil.Package{ID: "inner-1.0-0", Files: []string{"bin/tool"}})

	resolver := which.New(registry.New(outer, inner))

	res, err := resolver.Which(filepath.Join(inner, "bin", "tool"))
	require.NoError(t, err)
	assert.Equal(t, inner, res.Prefix)
	assert.Equal(t, []string{"inner-1.0-0"}, res.Packages)
}

func TestWhich_Idempotent(t *testing.T) {
	f := setup(t)
	path := filepath.Join(f.clobbered, "lib", "clobbered")

	first, err := f.resolver.Which(path)
	require.NoError(t, err)
	second, err := f.resolver.Which(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWhich_MalformedManifest(t *testing.T) {
	f := setup(t)
	bad := testutil.CreateFile(t, f.normal, filepath.Join("conda-meta", "broken-0.1-0.json"), "{")

	_, err := f.resolver.Which(filepath.Join(f.normal, "bin", "flask"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	assert.Equal(t, bad, errors.GetDetailString(err, errors.DetailFile))
}

func TestWhich_NotFoundSkipsManifests(t *testing.T) {
	f := setup(t)
	testutil.CreateFile(t, f.normal, filepath.Join("conda-meta", "broken-0.1-0.json"), "{")

	res, err := f.resolver.Which(filepath.Join(f.normal, "missing"))
	require.NoError(t, err)
	assert.Equal(t, which.NotFound, res.Kind)
}

func TestWhich_InMemoryManifests(t *testing.T) {
	mem, fsys := testutil.NewMemoryFS()
	testutil.WriteMemFile(t, mem, "/envs/normal/conda-meta/flask-1.0.0-abc.json", `{"files": ["bin/flask"]}`)

	identity := func(p string) (string, error) { return p, nil }
	resolver := which.NewWithFS(registry.New("/envs/normal"), fsys, identity)

	res, err := resolver.Which("/envs/normal/bin/flask")
	require.NoError(t, err)
	assert.Equal(t, which.Result{
		Query:    "/envs/normal/bin/flask",
		Path:     "/envs/normal/bin/flask",
		Prefix:   "/envs/normal",
		Packages: []string{"flask-1.0.0-abc"},
		Kind:     which.Owned,
	}, res)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not-found", which.NotFound.String())
	assert.Equal(t, "clobbered", which.Clobbered.String())
	assert.Equal(t, "unknown", which.Kind(99).String())
}
