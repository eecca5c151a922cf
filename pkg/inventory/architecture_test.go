package inventory_test

import (
	"testing"

	"stockboard/testutil"
)

func TestInventoryStaysFreeOfInternalPackages(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "pkg/inventory is the pure domain and must not depend on internal packages")
}

func TestInventoryHasNoDriverDependencies(t *testing.T) {
	if testing.Short() {
		t.Skip("go list is slow")
	}
	testutil.AssertNoTransitiveDependency(t, ".", testutil.DriverImportForbidden, "storage drivers belong to internal/infra")
}
