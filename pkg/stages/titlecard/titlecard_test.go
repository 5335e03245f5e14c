package titlecard

import (
	"context"
	"image/color"
	"testing"

	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/mocks"
	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
)

func TestStage_Execute(t *testing.T) {
	var canvas *mocks.Canvas
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas {
			canvas = &mocks.Canvas{}
			return canvas
		},
	}
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.TitleCardInput{
		Width:  1920,
		Height: 1080,
		Label:  "Cafe Aroma",
		Theme:  pipeline.DefaultCardTheme(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Image == nil {
		t.Fatal("expected card image")
	}

	if canvas == nil {
		t.Fatal("expected a canvas to be created")
	}
	if len(canvas.Texts) != 1 {
		t.Fatalf("expected one text draw, got %d", len(canvas.Texts))
	}
	text := canvas.Texts[0]
	if text.Text != "Cafe Aroma" {
		t.Errorf("expected label on the card, got %q", text.Text)
	}
	if text.X != 960 || text.Y != 540 {
		t.Errorf("expected centered label at (960, 540), got (%d, %d)", text.X, text.Y)
	}
}

func TestStage_Execute_InvalidDimensions(t *testing.T) {
	stage := NewStage(&mocks.Renderer{}, mocks.NewDebugSink(false), logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.TitleCardInput{Width: 0, Height: 1080}); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := stage.Execute(context.Background(), pipeline.TitleCardInput{Width: 1920, Height: -1}); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestStage_Execute_SavesCardWhenDebugging(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := NewStage(&mocks.Renderer{}, sink, logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.TitleCardInput{
		Width:  640,
		Height: 360,
		Label:  "Bakery",
		Theme:  pipeline.DefaultCardTheme(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.TitleCard == nil {
		t.Error("expected title card in sink")
	}
}
