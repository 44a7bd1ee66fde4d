package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diet-manager/internal/models"
)

func calories(t *testing.T, c *Catalog, food models.Food) float64 {
	t.Helper()
	got, err := food.CaloriesPerServing(c)
	require.NoError(t, err)
	return got
}

func TestCatalog_CompositeFollowsBasicUpdates(t *testing.T) {
	t.Parallel()

	c := New()
	bread := c.AddBasicFood("Bread", []string{"grain"}, 80)
	cheese := c.AddBasicFood("Cheese", []string{"dairy"}, 100)
	sandwich, err := c.AddCompositeFood("Cheese Sandwich", []string{"lunch"}, []models.FoodComponent{
		{FoodID: bread.ID(), Servings: 2},
		{FoodID: cheese.ID(), Servings: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 260.0, calories(t, c, sandwich))

	require.True(t, c.UpdateBasicCalories(bread.ID(), 90))
	assert.Equal(t, 280.0, calories(t, c, sandwich))

	assert.False(t, c.UpdateBasicCalories(sandwich.ID(), 10), "composites have no stored calories")
	assert.False(t, c.UpdateBasicCalories("missing", 10))
}

func TestCatalog_AddCompositeFood_UnknownComponent(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.AddCompositeFood("Mystery", nil, []models.FoodComponent{{FoodID: "nope", Servings: 1}})
	assert.ErrorIs(t, err, models.ErrFoodNotFound)
	assert.Zero(t, c.Len())
}

func TestCatalog_Lookups(t *testing.T) {
	t.Parallel()

	c := New()
	apple := c.AddBasicFood("Apple", []string{"fruit", "red"}, 95)
	banana := c.AddBasicFood("Banana", []string{"fruit", "yellow"}, 105)
	c.AddBasicFood("Cheese", []string{"dairy"}, 100)

	t.Run("by id", func(t *testing.T) {
		got, ok := c.FoodByID(apple.ID())
		require.True(t, ok)
		assert.Same(t, apple, got)
		_, ok = c.FoodByID("missing")
		assert.False(t, ok)
	})

	t.Run("by name ignores case", func(t *testing.T) {
		got, ok := c.FoodByName("bAnAnA")
		require.True(t, ok)
		assert.Equal(t, banana.ID(), got.ID())
		_, ok = c.FoodByName("Ban")
		assert.False(t, ok)
	})

	t.Run("by id prefix", func(t *testing.T) {
		got, ok := c.FoodByIDPrefix(apple.ID()[:8])
		require.True(t, ok)
		assert.Equal(t, apple.ID(), got.ID())
		_, ok = c.FoodByIDPrefix("")
		assert.False(t, ok)
	})

	t.Run("search all keywords", func(t *testing.T) {
		got := c.SearchByAllKeywords([]string{"fruit", "red"})
		require.Len(t, got, 1)
		assert.Equal(t, "Apple", got[0].Name())
	})

	t.Run("search any keyword keeps catalog order", func(t *testing.T) {
		got := c.SearchByAnyKeyword([]string{"dairy", "fruit"})
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Apple", "Banana", "Cheese"}, names(got))
	})

	t.Run("search with no match", func(t *testing.T) {
		assert.Empty(t, c.SearchByAnyKeyword([]string{"meat"}))
	})
}

func names(foods []models.Food) []string {
	out := make([]string, 0, len(foods))
	for _, f := range foods {
		out = append(out, f.Name())
	}
	return out
}

func TestCatalog_Delete(t *testing.T) {
	t.Parallel()

	c := New()
	bread := c.AddBasicFood("Bread", nil, 80)
	toast, err := c.AddCompositeFood("Toast", nil, []models.FoodComponent{{FoodID: bread.ID(), Servings: 1}})
	require.NoError(t, err)

	referrers := c.Referrers(bread.ID())
	require.Len(t, referrers, 1)
	assert.Equal(t, toast.ID(), referrers[0].ID())

	assert.True(t, c.Delete(bread.ID()))
	assert.False(t, c.Delete(bread.ID()))
	assert.Equal(t, 1, c.Len())

	_, err = toast.CaloriesPerServing(c)
	assert.ErrorIs(t, err, models.ErrFoodNotFound)
}

func TestCatalog_RecordsRoundTrip(t *testing.T) {
	t.Parallel()

	c := New()
	bread := c.AddBasicFood("Bread", []string{"grain"}, 80)
	cheese := c.AddBasicFood("Cheese", nil, 100)
	sandwich, err := c.AddCompositeFood("Sandwich", []string{"lunch"}, []models.FoodComponent{
		{FoodID: bread.ID(), Servings: 2},
		{FoodID: cheese.ID(), Servings: 1},
	})
	require.NoError(t, err)

	records := c.Records()
	require.Len(t, records, 3)
	assert.Equal(t, 260.0, records[2].CaloriesPerServing)
	assert.True(t, records[2].IsComposite)
	assert.Equal(t, []string{}, records[1].Keywords)

	loaded := New()
	require.NoError(t, loaded.Load(records))
	assert.Equal(t, 3, loaded.Len())

	got, ok := loaded.FoodByID(sandwich.ID())
	require.True(t, ok)
	assert.Equal(t, 260.0, calories(t, loaded, got))
	assert.Equal(t, names(c.Foods()), names(loaded.Foods()))
}

func TestCatalog_Load(t *testing.T) {
	t.Parallel()

	t.Run("forward references", func(t *testing.T) {
		records := []models.FoodRecord{
			{ID: "meal", Name: "Meal", IsComposite: true, CaloriesPerServing: 9999, Components: []models.FoodComponent{
				{FoodID: "sandwich", Servings: 1},
				{FoodID: "apple", Servings: 2},
			}},
			{ID: "sandwich", Name: "Sandwich", IsComposite: true, Components: []models.FoodComponent{
				{FoodID: "bread", Servings: 2},
			}},
			{ID: "bread", Name: "Bread", CaloriesPerServing: 80},
			{ID: "apple", Name: "Apple", CaloriesPerServing: 95},
		}

		c := New()
		require.NoError(t, c.Load(records))
		meal, ok := c.FoodByID("meal")
		require.True(t, ok)
		assert.Equal(t, 350.0, calories(t, c, meal), "stored composite calories are ignored")
	})

	t.Run("dangling component is kept", func(t *testing.T) {
		records := []models.FoodRecord{
			{ID: "toast", Name: "Toast", IsComposite: true, Components: []models.FoodComponent{{FoodID: "gone", Servings: 1}}},
		}

		c := New()
		require.NoError(t, c.Load(records))
		toast, ok := c.FoodByID("toast")
		require.True(t, ok)
		_, err := toast.CaloriesPerServing(c)
		assert.ErrorIs(t, err, models.ErrFoodNotFound)
		assert.Equal(t, "gone", c.Records()[0].Components[0].FoodID)
	})

	t.Run("cycle empties the catalog", func(t *testing.T) {
		records := []models.FoodRecord{
			{ID: "a", Name: "A", IsComposite: true, Components: []models.FoodComponent{{FoodID: "b", Servings: 1}}},
			{ID: "b", Name: "B", IsComposite: true, Components: []models.FoodComponent{{FoodID: "a", Servings: 1}}},
		}

		c := New()
		c.AddBasicFood("Existing", nil, 1)
		err := c.Load(records)
		assert.ErrorIs(t, err, models.ErrCycleDetected)
		assert.Zero(t, c.Len())
	})

	t.Run("cycle behind a dangling component", func(t *testing.T) {
		records := []models.FoodRecord{
			{ID: "a", Name: "A", IsComposite: true, Components: []models.FoodComponent{
				{FoodID: "missing", Servings: 1},
				{FoodID: "b", Servings: 1},
			}},
			{ID: "b", Name: "B", IsComposite: true, Components: []models.FoodComponent{{FoodID: "a", Servings: 1}}},
		}

		c := New()
		err := c.Load(records)
		var cycle *models.CycleError
		require.ErrorAs(t, err, &cycle)
		assert.Equal(t, []string{"a", "b", "a"}, cycle.Path)
		assert.Zero(t, c.Len())
	})

	t.Run("duplicate id empties the catalog", func(t *testing.T) {
		records := []models.FoodRecord{
			{ID: "x", Name: "X", CaloriesPerServing: 1},
			{ID: "x", Name: "X again", CaloriesPerServing: 2},
		}

		c := New()
		assert.ErrorIs(t, c.Load(records), ErrDuplicateFood)
		assert.Zero(t, c.Len())
	})

	t.Run("missing id", func(t *testing.T) {
		c := New()
		assert.Error(t, c.Load([]models.FoodRecord{{Name: "Nameless"}}))
		assert.Zero(t, c.Len())
	})
}
