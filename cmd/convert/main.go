// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command convert is the CLI surface described at §6 "boundary": it reads
// a PLY or STL mesh file, drains it through the transfer protocol into a
// SharedVertexMesh, and re-encodes it as PLY or STL in the requested
// encoding. Format is taken from --source-format/--target-format when
// given, otherwise guessed from the file extension.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-mesh/meshio/mesh"
	"github.com/go-mesh/meshio/ply"
	"github.com/go-mesh/meshio/stl"
	"github.com/go-mesh/meshio/transfer"
)

var (
	sourceFormat   string
	targetFormat   string
	targetEncoding string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "convert <source> <target>",
		Short: "Convert between PLY and STL mesh files",
		Long:  "convert reads a PLY or STL file and writes it back out as PLY or STL, in the requested encoding",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}

	rootCmd.Flags().StringVar(&sourceFormat, "source-format", "", "source format: ply or stl (default: guessed from file extension)")
	rootCmd.Flags().StringVar(&targetFormat, "target-format", "", "target format: ply or stl (default: guessed from file extension)")
	rootCmd.Flags().StringVar(&targetEncoding, "target-encoding", "", "target encoding: ascii, binary, binary-little-endian, binary-big-endian (default: ascii)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	srcPath, dstPath := args[0], args[1]

	srcFmt, err := resolveFormat(sourceFormat, srcPath)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	dstFmt, err := resolveFormat(targetFormat, dstPath)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	m := mesh.NewSharedVertexMesh()
	sink := transfer.NewMeshSink(m)

	switch srcFmt {
	case "ply":
		r, err := ply.Open(srcPath, nil)
		if err != nil {
			return fmt.Errorf("opening %s as ply: %w", srcPath, err)
		}
		defer r.Close()
		if err := transfer.FromPLY(r, sink); err != nil {
			return fmt.Errorf("reading %s: %w", srcPath, err)
		}
	case "stl":
		r, err := stl.Open(srcPath, nil)
		if err != nil {
			return fmt.Errorf("opening %s as stl: %w", srcPath, err)
		}
		defer r.Close()
		if err := transfer.FromSTL(r, sink); err != nil {
			return fmt.Errorf("reading %s: %w", srcPath, err)
		}
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dstPath, err)
	}
	defer out.Close()

	switch dstFmt {
	case "ply":
		enc, err := resolvePLYEncoding(targetEncoding)
		if err != nil {
			return err
		}
		if err := transfer.ToPLY(out, ply.WriteOptions{Encoding: enc}, sink); err != nil {
			return fmt.Errorf("writing %s: %w", dstPath, err)
		}
	case "stl":
		enc, err := resolveSTLEncoding(targetEncoding)
		if err != nil {
			return err
		}
		if err := transfer.ToSTL(out, stl.WriteOptions{Encoding: enc}, sink); err != nil {
			return fmt.Errorf("writing %s: %w", dstPath, err)
		}
	}

	return nil
}

func resolveFormat(explicit, path string) (string, error) {
	if explicit != "" {
		f := strings.ToLower(explicit)
		if f != "ply" && f != "stl" {
			return "", fmt.Errorf("unknown format %q, want ply or stl", explicit)
		}
		return f, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		return "ply", nil
	case ".stl":
		return "stl", nil
	default:
		return "", fmt.Errorf("cannot guess format from %q, pass --source-format/--target-format", path)
	}
}

func resolvePLYEncoding(explicit string) (ply.Encoding, error) {
	switch strings.ToLower(explicit) {
	case "", "ascii":
		return ply.ASCII, nil
	case "binary", "binary-little-endian":
		return ply.BinaryLittleEndian, nil
	case "binary-big-endian":
		return ply.BinaryBigEndian, nil
	default:
		return 0, fmt.Errorf("unknown target encoding %q for ply", explicit)
	}
}

func resolveSTLEncoding(explicit string) (stl.Encoding, error) {
	switch strings.ToLower(explicit) {
	case "", "ascii":
		return stl.ASCII, nil
	case "binary", "binary-little-endian", "binary-big-endian":
		return stl.Binary, nil
	default:
		return 0, fmt.Errorf("unknown target encoding %q for stl", explicit)
	}
}
