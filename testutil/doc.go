// Package testutil holds test doubles shared by package tests: a quiet
// logger and an in-memory staging storage that runs as a component.
//
//	func TestUpload(t *testing.T) {
//	    mem := testutil.NewMemStorage()
//	    testutil.T(t).Setup(mem)
//	    h := upload.NewHandler(mem.Storage(), upload.Config{}, testutil.Logger())
//	    ...
//	    if n := len(mem.Files()); n != 0 { ... }
//	}
package testutil
