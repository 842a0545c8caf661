package fs

// Delete removes the named file, freeing its blocks and crediting its size
// back to free_bytes. It fails with NotFound if name is unknown.
func (f *FS) Delete(name string) error {
	idx, err := f.ft.Find(name)
	if err != nil {
		return err
	}

	entry := f.ft.Get(idx)
	f.bm.FreeRange(entry.StartOffset, entry.SizeBytes)
	f.ft.Remove(idx)
	f.freeBytes += entry.SizeBytes

	if err := f.persist(); err != nil {
		return err
	}

	f.log.Info("delete", "name", name, "size_bytes", entry.SizeBytes)
	return nil
}
