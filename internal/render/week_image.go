package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/formatting"
	"github.com/Freeeeeet/clinic_calendar/internal/service"
	"github.com/fogleman/gg"
)

// Константы размеров и отступов
const (
	leftLabelsWidth  = 70.0
	titleHeight      = 44.0
	dayHeaderHeight  = 30.0
	workerRowHeight  = 24.0
	headerHeight     = titleHeight + dayHeaderHeight + workerRowHeight
	workerColWidth   = 96.0
	slotRowHeight    = 28.0
	bottomPadding    = 12.0
	cellPadding      = 3.0
	slotBorderRadius = 6.0
	shadowOffset     = 2.0
	maxLabelRunes    = 12
)

// Константы шрифтов
const (
	titleFontSize     = 24.0
	dayFontSize       = 18.0
	workerFontSize    = 13.0
	hourLabelFontSize = 14.0
	slotFontSize      = 13.0
)

// Цветовая схема
var (
	bgColor             = color.RGBA{245, 246, 248, 255}
	textColor           = color.RGBA{80, 85, 90, 255}
	hourLabelColor      = color.RGBA{110, 115, 120, 255}
	hourLineColor       = color.NRGBA{150, 150, 150, 255}
	todayBgColor        = color.NRGBA{255, 99, 71, 60}
	evenDayColor        = color.NRGBA{240, 240, 240, 255}
	oddDayColor         = color.NRGBA{225, 225, 225, 255}
	workerLineColor     = color.NRGBA{200, 200, 200, 255}
	slotBookedColor     = color.RGBA{255, 182, 193, 255}
	slotBookedTextColor = color.RGBA{120, 40, 50, 255}
	slotShadowColor     = color.RGBA{0, 0, 0, 20}
)

// WeekImage рисует неделю записей в PNG: дни по горизонтали,
// внутри дня колонка на каждого специалиста, строки - слоты
func WeekImage(view *service.WeekView) ([]byte, error) {
	workers := len(view.Workers)
	if workers == 0 {
		workers = 1
	}

	dayWidth := float64(workers) * workerColWidth
	width := leftLabelsWidth + dayWidth*float64(len(view.Dates))
	height := headerHeight + float64(len(view.TimeSlots))*slotRowHeight + bottomPadding

	dc := gg.NewContext(int(width), int(height))
	dc.SetColor(bgColor)
	dc.Clear()

	loadFont(dc, titleFontSize)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(fmt.Sprintf("%s %d", view.MonthName, view.Year), width/2, titleHeight/2, 0.5, 0.5)

	for i, d := range view.Dates {
		x := leftLabelsWidth + float64(i)*dayWidth
		drawDay(dc, view, i, x, dayWidth, height)

		for j, worker := range view.Workers {
			wx := x + float64(j)*workerColWidth
			drawWorkerColumn(dc, view, d, worker, wx, height)
		}
	}

	drawSlotLines(dc, view.TimeSlots, width)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawDay(dc *gg.Context, view *service.WeekView, i int, x, dayWidth, height float64) {
	d := view.Dates[i]

	dc.SetColor(evenDayColor)
	if i%2 == 1 {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, titleHeight, dayWidth, height-titleHeight)
	dc.Fill()

	if d.Equal(view.Today) {
		dc.SetColor(todayBgColor)
		dc.DrawRectangle(x, titleHeight, dayWidth, height-titleHeight)
		dc.Fill()
	}

	loadFont(dc, dayFontSize)
	dc.SetColor(textColor)
	label := fmt.Sprintf("%s %s", formatting.WeekdayShort(d.Weekday()), formatting.FormatDayMonth(d))
	dc.DrawStringAnchored(label, x+dayWidth/2, titleHeight+dayHeaderHeight/2, 0.5, 0.5)
}

func drawWorkerColumn(dc *gg.Context, view *service.WeekView, d time.Time, worker string, wx, height float64) {
	dc.SetColor(workerLineColor)
	dc.SetLineWidth(1)
	dc.DrawLine(wx, titleHeight+dayHeaderHeight, wx, height)
	dc.Stroke()

	loadFont(dc, workerFontSize)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(truncate(worker), wx+workerColWidth/2, titleHeight+dayHeaderHeight+workerRowHeight/2, 0.5, 0.5)

	loadFont(dc, slotFontSize)
	for k, slot := range view.TimeSlots {
		b := view.Grid.At(d, worker, slot)
		if b == nil {
			continue
		}

		y := headerHeight + float64(k)*slotRowHeight
		w := workerColWidth - 2*cellPadding
		h := slotRowHeight - 2*cellPadding

		dc.SetColor(slotShadowColor)
		dc.DrawRoundedRectangle(wx+cellPadding+shadowOffset, y+cellPadding+shadowOffset, w, h, slotBorderRadius)
		dc.Fill()

		dc.SetColor(slotBookedColor)
		dc.DrawRoundedRectangle(wx+cellPadding, y+cellPadding, w, h, slotBorderRadius)
		dc.Fill()

		dc.SetColor(slotBookedTextColor)
		dc.DrawStringAnchored(truncate(b.Surname), wx+workerColWidth/2, y+slotRowHeight/2, 0.5, 0.5)
	}
}

func drawSlotLines(dc *gg.Context, slots []string, width float64) {
	loadFont(dc, hourLabelFontSize)
	for k, slot := range slots {
		y := headerHeight + float64(k)*slotRowHeight

		// полные часы жирнее получасовых
		dc.SetLineWidth(0.5)
		if k%2 == 0 {
			dc.SetLineWidth(1)
		}
		dc.SetColor(hourLineColor)
		dc.DrawLine(leftLabelsWidth, y, width, y)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(slot, leftLabelsWidth/2, y+slotRowHeight/2, 0.5, 0.5)
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelRunes {
		return s
	}
	return string(r[:maxLabelRunes-1]) + "…"
}
