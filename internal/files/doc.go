// Package files discovers dataset files in the data directory.
//
//	d := files.NewDiscovery(paths.BaseDir)
//	datasets, err := d.FindDataFiles(paths.DataDir)
package files
