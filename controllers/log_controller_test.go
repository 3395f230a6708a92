package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrisnap/models"
	"nutrisnap/services"
	"nutrisnap/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type memoryLogStore struct {
	entries map[uuid.UUID]models.FoodLog
}

func newMemoryLogStore() *memoryLogStore {
	return &memoryLogStore{entries: make(map[uuid.UUID]models.FoodLog)}
}

func (m *memoryLogStore) Insert(userID uint, foodName string, rec utils.ScaledRecord) (*models.FoodLog, error) {
	entry := models.FoodLog{
		LogID:    uuid.New(),
		UserID:   userID,
		FoodName: foodName,
		Calories: rec.Calories,
		Protein:  rec.Protein,
		Carbs:    rec.Carbs,
		Fat:      rec.Fat,
		Sugar:    rec.Sugar,
	}
	m.entries[entry.LogID] = entry
	return &entry, nil
}

func (m *memoryLogStore) ListRecent(userID uint, limit int) ([]models.FoodLog, error) {
	var out []models.FoodLog
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete mirrors the database adapter: an id with no matching row is not
// an error, the entry is simply confirmed absent.
func (m *memoryLogStore) Delete(userID uint, logID uuid.UUID) error {
	if e, ok := m.entries[logID]; ok && e.UserID == userID {
		delete(m.entries, logID)
	}
	return nil
}

func logTestRouter(store services.LogStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	lc := NewLogController(store, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", uint(1)) })
	r.GET("/logs", lc.ListLogs)
	r.DELETE("/logs/:log_id", lc.DeleteLog)
	return r
}

func doDelete(t *testing.T, r *gin.Engine, id string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodDelete, "/logs/"+id, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestDeleteLogAbsentIDIsNoOp(t *testing.T) {
	store := newMemoryLogStore()
	r := logTestRouter(store)

	if w := doDelete(t, r, uuid.NewString()); w.Code != http.StatusNoContent {
		t.Errorf("deleting an unknown id: status %d, want 204", w.Code)
	}

	entry, err := store.Insert(1, "Apple, raw", utils.ScaledRecord{Calories: 95})
	if err != nil {
		t.Fatal(err)
	}
	if w := doDelete(t, r, entry.LogID.String()); w.Code != http.StatusNoContent {
		t.Errorf("first delete: status %d, want 204", w.Code)
	}
	if w := doDelete(t, r, entry.LogID.String()); w.Code != http.StatusNoContent {
		t.Errorf("repeated delete of the same id: status %d, want 204", w.Code)
	}

	left, _ := store.ListRecent(1, services.DefaultLogLimit)
	if len(left) != 0 {
		t.Errorf("%d entries left after delete, want 0", len(left))
	}
}

func TestDeleteLogRejectsMalformedID(t *testing.T) {
	r := logTestRouter(newMemoryLogStore())
	if w := doDelete(t, r, "not-a-uuid"); w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status %d, want 400", w.Code)
	}
}

func TestDeleteLogScopedToOwner(t *testing.T) {
	store := newMemoryLogStore()
	other, err := store.Insert(2, "Someone else's apple", utils.ScaledRecord{Calories: 95})
	if err != nil {
		t.Fatal(err)
	}

	r := logTestRouter(store) // authenticated as user 1
	if w := doDelete(t, r, other.LogID.String()); w.Code != http.StatusNoContent {
		t.Errorf("cross-user delete: status %d, want 204 (treated as absent)", w.Code)
	}

	kept, _ := store.ListRecent(2, services.DefaultLogLimit)
	if len(kept) != 1 {
		t.Error("another user's entry was deleted")
	}
}
