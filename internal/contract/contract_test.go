package contract_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/audit/internal/contract"
)

const token = `pragma solidity ^0.8.0;

contract Token {
    mapping(address => uint256) public balances;
}
`

func TestLoad(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "Token.sol"), []byte(token), 0644))

	path, err := contract.Resolve(dir, "Token.sol")
	is.NoErr(err)
	is.Equal(path, filepath.Join(dir, "Token.sol"))

	src, err := contract.Load(path)
	is.NoErr(err)
	is.Equal(src.Path, path)
	is.Equal(src.Text, token)
}

func TestResolveAbsolute(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	abs := filepath.Join(dir, "nested", "..", "Token.sol")
	path, err := contract.Resolve("/somewhere/else", abs)
	is.NoErr(err)
	is.Equal(path, filepath.Join(dir, "Token.sol"))
}

func TestLoadNotFound(t *testing.T) {
	is := is.New(t)
	_, err := contract.Load(filepath.Join(t.TempDir(), "Missing.sol"))
	is.True(errors.Is(err, contract.ErrNotFound))
}

func TestLoadDirectory(t *testing.T) {
	is := is.New(t)
	_, err := contract.Load(t.TempDir())
	is.True(errors.Is(err, contract.ErrDirectory))
}
