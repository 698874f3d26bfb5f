package handlers

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
)

// GroupMenu builds the group selection keyboard, one button per known chat
// in most-recently-seen order, plus a refresh button.
func GroupMenu(chats []database.Chat, msgs config.MessagesConfig) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(chats)+1)
	for _, c := range chats {
		title := c.Title
		if title == "" {
			title = fmt.Sprintf("Grupo %d", c.ChatID)
		}
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         title,
			CallbackData: Action{Kind: ActionPickGroup, GroupID: c.ChatID}.Encode(),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         msgs.BtnRefresh,
		CallbackData: Action{Kind: ActionRefresh}.Encode(),
	}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ModeMenu builds the digest layout keyboard.
func ModeMenu(msgs config.MessagesConfig) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{
			Text:         msgs.BtnModeGeneral,
			CallbackData: Action{Kind: ActionPickMode, ByTopic: false}.Encode(),
		}},
		{{
			Text:         msgs.BtnModeTopics,
			CallbackData: Action{Kind: ActionPickMode, ByTopic: true}.Encode(),
		}},
		{{
			Text:         msgs.BtnBack,
			CallbackData: Action{Kind: ActionBack, BackTo: MenuGroups}.Encode(),
		}},
	}}
}

// TopicMenu builds the topic selection keyboard for the chosen group.
func TopicMenu(threads []int64, msgs config.MessagesConfig) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(threads)+2)
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         msgs.BtnAllTopics,
		CallbackData: Action{Kind: ActionPickTopic}.Encode(),
	}})
	for _, id := range threads {
		id := id
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("🧵 Tópico %d", id),
			CallbackData: Action{Kind: ActionPickTopic, ThreadID: &id}.Encode(),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         msgs.BtnBack,
		CallbackData: Action{Kind: ActionBack, BackTo: MenuMode}.Encode(),
	}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// DateMenu builds the day selection keyboard. The back target depends on
// whether the wizard went through the topic menu.
func DateMenu(msgs config.MessagesConfig, backTo Menu) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{
			{
				Text:         msgs.BtnToday,
				CallbackData: Action{Kind: ActionPickDay, Day: DayToday}.Encode(),
			},
			{
				Text:         msgs.BtnYesterday,
				CallbackData: Action{Kind: ActionPickDay, Day: DayYesterday}.Encode(),
			},
		},
		{{
			Text:         msgs.BtnOtherDate,
			CallbackData: Action{Kind: ActionPickDay, Day: DayAsk}.Encode(),
		}},
		{{
			Text:         msgs.BtnBack,
			CallbackData: Action{Kind: ActionBack, BackTo: backTo}.Encode(),
		}},
	}}
}
