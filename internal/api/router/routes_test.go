// Package router - Test các CRUD config dùng chung giữa các domain.
package router

import "testing"

// mutationOps liệt kê các flag mở route mutation generic của một config.
func mutationOps(c CRUDConfig) map[string]bool {
	return map[string]bool{
		"insert-many":         c.InsMany,
		"update-one":          c.UpdOne,
		"update-many":         c.UpdMany,
		"update-by-id":        c.UpdById,
		"find-one-and-update": c.FindUpd,
		"delete-one":          c.DelOne,
		"delete-many":         c.DelMany,
		"delete-by-id":        c.DelById,
		"find-one-and-delete": c.FindDel,
		"upsert-one":          c.Upsert,
	}
}

func TestReadCreateConfig_NoGenericMutations(t *testing.T) {
	// Route generic update-by-id bỏ qua CAS version và validator trạng thái,
	// delete-by-id xóa cứng document. Content items và teams không được mở chúng:
	// mọi mutation phải đi qua các route vòng đời có kiểm soát.
	for op, enabled := range mutationOps(ReadCreateConfig) {
		if enabled {
			t.Errorf("ReadCreateConfig không được mở route %s", op)
		}
	}
	if !ReadCreateConfig.InsOne {
		t.Error("ReadCreateConfig phải mở insert-one")
	}
	if !ReadCreateConfig.Find || !ReadCreateConfig.FindById || !ReadCreateConfig.Paginate {
		t.Error("ReadCreateConfig phải mở các route đọc")
	}
}

func TestReadOnlyConfig_NoWrites(t *testing.T) {
	for op, enabled := range mutationOps(ReadOnlyConfig) {
		if enabled {
			t.Errorf("ReadOnlyConfig không được mở route %s", op)
		}
	}
	if ReadOnlyConfig.InsOne {
		t.Error("ReadOnlyConfig không được mở insert-one")
	}
	if !ReadOnlyConfig.Find || !ReadOnlyConfig.FindById || !ReadOnlyConfig.Count {
		t.Error("ReadOnlyConfig phải mở các route đọc")
	}
}
