package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransform struct {
	X, Y, Z float64
}

type testMaterial struct {
	Opacity  float64
	Additive bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID 从 1 开始，0 保留为无效 ID
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testTransform{X: 100, Y: 200, Z: -5})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testTransform{}))
	if !found {
		t.Fatal("Component should be found")
	}
	got := comp.(*testTransform)
	if got.X != 100 || got.Y != 200 || got.Z != -5 {
		t.Errorf("Component data mismatch, got %+v", got)
	}
}

func TestGenericAccessors(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testMaterial](em, id) {
		t.Error("添加前不应拥有组件")
	}

	AddComponent(em, id, &testMaterial{Opacity: 0.5, Additive: true})

	mat, ok := GetComponent[*testMaterial](em, id)
	if !ok {
		t.Fatal("GetComponent[*testMaterial] should succeed")
	}
	if mat.Opacity != 0.5 || !mat.Additive {
		t.Errorf("unexpected material %+v", mat)
	}

	// 泛型版本与反射版本共享同一张表
	if !em.HasComponent(id, reflect.TypeOf(&testMaterial{})) {
		t.Error("reflection lookup should see component added through generics")
	}

	RemoveComponent[*testMaterial](em, id)
	if _, ok := GetComponent[*testMaterial](em, id); ok {
		t.Error("component should be removed")
	}
}

func TestGetComponentMissingEntity(t *testing.T) {
	em := NewEntityManager()
	if _, ok := GetComponent[*testTransform](em, 42); ok {
		t.Error("lookup on unknown entity should fail")
	}
	// 对不存在的实体添加组件是空操作
	AddComponent(em, 42, &testTransform{})
	if em.Exists(42) {
		t.Error("AddComponent must not create entities")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testTransform{})
	AddComponent(em, id1, &testMaterial{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testTransform{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testMaterial{})

	both := GetEntitiesWith2[*testTransform, *testMaterial](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected [id1], got %v", both)
	}

	withTransform := em.GetEntitiesWith(reflect.TypeOf(&testTransform{}))
	if len(withTransform) != 2 {
		t.Errorf("Expected 2 entities with transform, got %d", len(withTransform))
	}
}

// TestQueryOrderIsCreationOrder 查询结果必须按创建顺序返回（渲染排序依赖稳定顺序）
func TestQueryOrderIsCreationOrder(t *testing.T) {
	em := NewEntityManager()
	want := make([]EntityID, 0, 50)
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTransform{X: float64(i)})
		want = append(want, id)
	}

	for run := 0; run < 3; run++ {
		got := GetEntitiesWith1[*testTransform](em)
		if len(got) != len(want) {
			t.Fatalf("got %d entities, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("run %d: position %d = %d, want %d", run, i, got[i], want[i])
			}
		}
	}
}
