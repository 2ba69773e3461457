package repositories

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
)

// Seed data written on first start when a data file is missing.

func DefaultKnowledge(venueName string) *filestore.OrderedMap[string] {
	kb := filestore.NewOrderedMap[string]()
	kb.Set("привет", fmt.Sprintf("👋 Привет! Рад вас видеть в %s! 😊\nГотов помочь с выбором развлечений", venueName))
	kb.Set("пока", "👋 До свидания! Приходите еще!")
	kb.Set("спасибо", "Пожалуйста! Рад был помочь! 😊")
	return kb
}

func DefaultSuggestions() *filestore.OrderedMap[[]models.SuggestionItem] {
	m := filestore.NewOrderedMap[[]models.SuggestionItem]()
	m.Set("vr", []models.SuggestionItem{
		{Text: "Игры", Question: "игры в vr", Answer: "У нас есть различные VR-игры: экшены, гонки, головоломки! 🎮"},
		{Text: "Цены", Question: "стоимость vr", Answer: "VR-сеанс стоит от 300 рублей за 30 минут! 💰"},
		{Text: "Забронировать", Question: "забронировать vr", Answer: "Чтобы забронировать VR, перейдите на страницу бронирования! 📅"},
		{Text: "Правила", Question: "правила безопасности в vr", Answer: "В VR-зоне необходимо соблюдать технику безопасности! ⚠️"},
	})
	m.Set("батуты", []models.SuggestionItem{
		{Text: "Для детей?", Question: "можно ли на батуты с маленькими детьми", Answer: "Да, у нас есть специальные батуты для детей от 3 лет! 👶"},
		{Text: "Цены", Question: "стоимость батутов", Answer: "Батутный центр - от 500 рублей за час! 🏀"},
		{Text: "Забронировать", Question: "забронировать батуты", Answer: "Забронируйте батуты через нашу систему бронирования! 🎯"},
		{Text: "Аниматор", Question: "есть ли аниматор на батуты", Answer: "Да, мы предоставляем услуги аниматора для детских праздников! 🎪"},
	})
	m.Set(models.DefaultTopic, []models.SuggestionItem{
		{Text: "Забронировать", Question: "хочу забронировать", Answer: "Перейдите на страницу бронирования для оформления заказа! 📋"},
		{Text: "Цены", Question: "цены", Answer: "Цены зависят от выбранного аттракциона. Уточните у нашего менеджера! 💵"},
	})
	return m
}

func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{AdminText: "VR-зоны", DisplayText: "🎮 VR-зоны — от 300 ₽", Question: "vr", Category: "attractions", PriceInfo: "от 300 ₽", SuggestionTopic: "vr"},
		{AdminText: "Батуты", DisplayText: "🏀 Батутный центр — от 500 ₽", Question: "батуты", Category: "attractions", PriceInfo: "от 500 ₽", SuggestionTopic: "батуты"},
		{AdminText: "Нерф", DisplayText: "🔫 Нерф-арена — от 2500 ₽", Question: "нерф", Category: "attractions", PriceInfo: "от 2500 ₽", SuggestionTopic: models.DefaultTopic},
		{AdminText: "День рождения", DisplayText: "🎉 День рождения", Question: "день рождения", Category: "events", SuggestionTopic: models.DefaultTopic},
		{AdminText: "Выпускные", DisplayText: "🎓 Выпускные", Question: "выпускные", Category: "events", SuggestionTopic: models.DefaultTopic},
		{AdminText: "Мероприятия", DisplayText: "🎪 Мероприятия", Question: "мероприятия", Category: "events", SuggestionTopic: models.DefaultTopic},
	}
}
