// Package mouse defines mouse buttons as bindable inputs.
//
// Real buttons (left, middle, right and the two extra buttons) have held
// state like keys. The wheel is exposed as ButtonWheelUp and
// ButtonWheelDown, which a backend presses and releases within a single
// frame; bindings on them are always evaluated on press.
package mouse
