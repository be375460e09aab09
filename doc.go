// Package bondbook keeps a book of coupon bonds and computes the income they
// pay month by month.
//
// The core functionalities include:
//   - Book Management: an ordered list of instruments, each with a held
//     quantity, a coupon paid per unit and the months it pays in. Every
//     mutation returns a new immutable snapshot.
//   - Income Aggregation: the income of each month of the year, the annual
//     income of each instrument and the grand total.
//   - Recommendations: the instruments paying in the lowest income months,
//     ranked by coupon and by the nearest payout.
//   - Data Persistence: the book is saved as a whole in a single named slot
//     after every change, see the storage package for the backends.
//
// This package serves as the foundational logic for the `bbk` command-line
// tool and its HTTP server.
package bondbook
