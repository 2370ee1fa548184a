// Package chip8 implements the CHIP-8 virtual machine.
//
// The machine consists of 4KB of memory, sixteen 8-bit general purpose
// registers (V0-VF), a 16-bit index register, a program counter, a sixteen
// entry call stack, two 8-bit timers decremented at 60Hz, a 64x32 monochrome
// display buffer and a sixteen key input latch. A mode flag, fixed at
// construction, selects between legacy CHIP-8 and CHIP-48 semantics for the
// few instruction families whose behavior diverged between the two.
//
// The engine is headless: rendering, audio and input collaborators attach
// through the interpreter package.
package chip8
